// Package events implements the notify center with redis pub/sub so
// every api and monitor process sees the same broadcasts.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	r "github.com/redis/go-redis/v9"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/redis"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/utils"
)

var (
	once   sync.Once
	center *Events
)

type Events struct {
	actions sync.Map
	subs    sync.Map
	client  *r.Client
	wait    sync.WaitGroup
}

func NewEvents() notify.MsgCenter {
	once.Do(func() {
		center = &Events{client: redis.GetClient()}
	})
	return center
}

// NewEventsWith builds an isolated center around the given client.
func NewEventsWith(client *r.Client) notify.MsgCenter {
	return &Events{client: client}
}

func (e *Events) Registry(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if _, ok := e.actions.LoadOrStore(msgName, handleFunc); ok {
		return code.NotifyDupAction.WithMsg(string(msgName))
	}

	sub := e.client.Subscribe(ctx, string(msgName))
	e.subs.Store(msgName, sub)

	e.wait.Add(1)
	utils.SafelyGo(func() {
		defer e.wait.Done()
		defer e.detach(ctx, msgName, sub)

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg == nil {
					continue
				}
				if err := handleFunc(ctx, msg.Payload); err != nil {
					logger.Errorf(ctx, "handle redis msg fail name: %s, err: %+v", msgName, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}, func(err error) {
		logger.Errorf(ctx, "Registry handle msg err: %+v", err)
	})
	return nil
}

// detach drops the subscription and frees the action name for a later
// Registry call.
func (e *Events) detach(ctx context.Context, msgName notify.Action, sub *r.PubSub) {
	logger.Infof(ctx, "exit redis channel name: %s", string(msgName))
	if err := sub.Unsubscribe(ctx, string(msgName)); err != nil {
		logger.Errorf(ctx, "unsubscribe fail msg name: %s, err: %+v", msgName, err)
	}
	e.subs.Delete(msgName)
	e.actions.Delete(msgName)
}

func (e *Events) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	msg.Timestamp = time.Now().Unix()
	if msg.UUID.IsNil() {
		msg.UUID = uuid.NewV4()
	}

	data, _ := json.Marshal(msg)
	ret := e.client.Publish(ctx, string(msg.Channel), data)
	if ret.Err() != nil {
		logger.Errorf(ctx, "send msg fail action: %s, err: %+v", msg.Channel, ret.Err())
		return code.NotifySendErr
	}
	return nil
}

func (e *Events) Close(ctx context.Context) error {
	e.wait.Wait()
	return nil
}

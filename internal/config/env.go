package config

type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreTable    StoreBackend = "table"
)

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"qctrack"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"qctrack"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform    string `mapstructure:"PLATFORM" default:"qctrack"`
	Service     string `mapstructure:"SERVICE" default:"api"`
	Port        int    `mapstructure:"WEB_PORT" default:"8080"`
	MonitorPort int    `mapstructure:"MONITOR_PORT" default:"8081"`
	Env         string `mapstructure:"ENV" default:"dev"`
}

type Auth struct {
	JWTSecret string `mapstructure:"AUTH_JWT_SECRET" default:"qctrack-dev-secret"`
}

// Store selects the persistence backend: a local postgres schema or the
// hosted row-oriented table service.
type Store struct {
	Backend StoreBackend `mapstructure:"STORE_BACKEND" default:"postgres"`
	Addr    string       `mapstructure:"STORE_ADDR" default:"http://127.0.0.1:54321"`
	APIKey  string       `mapstructure:"STORE_APIKEY"`
}

type Monitor struct {
	TickSeconds int `mapstructure:"MONITOR_TICK_SECONDS" default:"60"`
	PoolSize    int `mapstructure:"MONITOR_POOL_SIZE" default:"50"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version         string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint   string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint  string `mapstructure:"TRACE_METRICENDPOINT" default:""`
	TraceProject    string `mapstructure:"TRACE_TRACEPROJECT" default:""`
	TraceInstanceID string `mapstructure:"TRACE_TRACEINSTANCEID" default:""`
	TraceAK         string `mapstructure:"TRACE_TRACEAK" default:""`
	TraceSK         string `mapstructure:"TRACE_TRACESK" default:""`
}

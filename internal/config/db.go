package config

const (
	// EngineMySQL selects the gorm mysql driver.
	EngineMySQL = "mysql"
	// EnginePostgres selects the gorm postgres driver.
	EnginePostgres = "postgres"
	// EngineSQLite selects the pure go sqlite driver.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // database file for the sqlite engine
	GormEngine string // mysql, postgres or sqlite
}

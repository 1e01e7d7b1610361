package cmd

// Config carries all runtime settings of the dispatch service. Values are
// read from the environment by cmd/app and passed down explicitly; nothing
// below this layer touches os.Getenv.
type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	KafkaHost                string
	KafkaDeliveryStatusTopic string
	StaleDeliveryTimeout     string
}

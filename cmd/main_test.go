package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-29"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2026-08-29") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if cfg.AppHost != "localhost" || cfg.AppPort != "8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", cfg.AppHost, cfg.AppPort, cfg.LogLevel)
	}

	// Redis
	if cfg.RedisHost != "localhost" || cfg.RedisPort != 6379 || cfg.RedisDB != 0 || cfg.RedisPassword != "" ||
		cfg.RedisPoolSize != 10 || cfg.RedisMinIdleConns != 2 {
		t.Errorf("unexpected redis config")
	}

	// JWT
	if cfg.JWTSecretKey != "my_super_secret_key" || cfg.JWTExpMinute != 30 {
		t.Errorf("unexpected jwt config")
	}

	// CORS
	if len(cfg.CORSAllowedOrigins) != 2 ||
		cfg.CORSAllowedOrigins[0] != "http://localhost:3000" ||
		cfg.CORSAllowedOrigins[1] != "http://localhost:8000" {
		t.Errorf("unexpected cors config: %v", cfg.CORSAllowedOrigins)
	}

	// Kafka is off by default
	if cfg.KafkaAddr != "" || cfg.KafkaTopic != "todo-events" {
		t.Errorf("unexpected kafka config: %v/%v", cfg.KafkaAddr, cfg.KafkaTopic)
	}

	if cfg.RequestTimeoutSecond != 15 {
		t.Errorf("unexpected request timeout: %d", cfg.RequestTimeoutSecond)
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_POOL_SIZE", "15")
	os.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_MINUTE", "5")

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	os.Setenv("KAFKA_ADDR", "kafka.example.com:9092")
	os.Setenv("KAFKA_TOPIC", "todo-audit")

	os.Setenv("REQUEST_TIMEOUT_SECOND", "30")

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.AppHost != "127.0.0.1" || cfg.AppPort != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if cfg.RedisHost != "redis.example.com" || cfg.RedisPort != 6380 || cfg.RedisDB != 2 ||
		cfg.RedisPassword != "redispass" || cfg.RedisPoolSize != 15 || cfg.RedisMinIdleConns != 5 {
		t.Errorf("unexpected redis config")
	}
	if cfg.JWTSecretKey != "supersecret" || cfg.JWTExpMinute != 5 {
		t.Errorf("unexpected jwt config")
	}
	if len(cfg.CORSAllowedOrigins) != 2 ||
		cfg.CORSAllowedOrigins[0] != "https://app.example.com" ||
		cfg.CORSAllowedOrigins[1] != "https://admin.example.com" {
		t.Errorf("unexpected cors config: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.KafkaAddr != "kafka.example.com:9092" || cfg.KafkaTopic != "todo-audit" {
		t.Errorf("unexpected kafka config")
	}
	if cfg.RequestTimeoutSecond != 30 {
		t.Errorf("unexpected request timeout: %d", cfg.RequestTimeoutSecond)
	}
}

func TestParseConfig_InvalidInt(t *testing.T) {
	resetEnv()
	os.Setenv("REDIS_PORT", "not-a-number")

	if _, err := parseConfig("nonexistent.env"); err == nil {
		t.Error("expected error for non-numeric REDIS_PORT")
	}
}

package env

import "os"

// GetEnv returns the value of the env var or the given default when unset.
func GetEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

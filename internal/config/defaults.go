package config

import (
	"runtime"
	"time"

	"github.com/MKhiriev/go-pass-locker/internal/crypto"
)

func defaultConfig() *StructuredConfig {
	kdf := crypto.DefaultKDFParams()

	return &StructuredConfig{
		Vault: Vault{
			ArgonTime:      kdf.Time,
			ArgonMemoryKiB: kdf.MemoryKiB,
			ArgonThreads:   kdf.Threads,
			KDFWorkers:     runtime.NumCPU(),
		},
		Storage: Storage{
			Driver:           DriverPostgres,
			OperationTimeout: 5 * time.Second,
			RetryAttempts:    3,
			RetryBackoff:     100 * time.Millisecond,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

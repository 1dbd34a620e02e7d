package workers

import (
	"context"
	"runtime"

	"github.com/MKhiriev/go-pass-locker/internal/crypto"
	"github.com/MKhiriev/go-pass-locker/models"
	"golang.org/x/sync/semaphore"
)

type kdfPool struct {
	deriver crypto.KeyDeriver
	slots   *semaphore.Weighted
	size    int
}

// NewKDFPool wraps deriver with a pool of size slots.
// A non-positive size falls back to runtime.NumCPU().
func NewKDFPool(deriver crypto.KeyDeriver, size int) KDFPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	return &kdfPool{
		deriver: deriver,
		slots:   semaphore.NewWeighted(int64(size)),
		size:    size,
	}
}

func (p *kdfPool) Derive(ctx context.Context, masterPassword, salt []byte, params models.KDFParams) ([]byte, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.slots.Release(1)

	return p.deriver.Derive(masterPassword, salt, params)
}

func (p *kdfPool) Size() int {
	return p.size
}

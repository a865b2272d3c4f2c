package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type cartSweeper interface {
	Sweep(now time.Time) int
}

// CartSweepJob evicts carts that have sat idle past their TTL.
type CartSweepJob struct {
	carts cartSweeper
	logg  *logger.Logger
	now   func() time.Time
}

// NewCartSweepJob builds the cart sweep job.
func NewCartSweepJob(carts cartSweeper, logg *logger.Logger) (*CartSweepJob, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart registry is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &CartSweepJob{carts: carts, logg: logg, now: time.Now}, nil
}

func (j *CartSweepJob) Name() string { return "cart_sweep" }

func (j *CartSweepJob) Run(ctx context.Context) error {
	evicted := j.carts.Sweep(j.now())
	if evicted > 0 {
		j.logg.Info(j.logg.WithField(ctx, "evicted", evicted), "swept idle carts")
	}
	return nil
}

package background

import (
	"context"
	"log"
	"time"

	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const restockScanLimit = 100

// JobScheduler runs the periodic background jobs.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	productRepo repositories.ProductRepository
}

func NewJobScheduler(productRepo repositories.ProductRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		productRepo: productRepo,
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processRestockAlerts),
		gocron.WithName("restock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// processRestockAlerts logs every active product whose stock has fallen
// close to its minimum threshold.
func (js *JobScheduler) processRestockAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := js.productRepo.ListNeedingRestock(ctx, restockScanLimit)
	if err != nil {
		log.Printf("ERROR: restock alert scan failed: %v", err)
		return
	}
	for _, product := range products {
		log.Printf("ALERT: product %s (%s) needs restocking: stock=%d min_threshold=%d",
			product.Name, product.ID, product.Stock, product.MinThreshold)
	}
}

package jobs

import (
	"log"
	"time"

	"bookmyrepair-server/database"
	"bookmyrepair-server/models"
)

// staleAfter is how long a live position survives on a closed booking
// before the sweeper clears it.
const staleAfter = 24 * time.Hour

// StaleLocationJob clears stale technician positions from closed bookings
type StaleLocationJob struct {
	interval time.Duration
	stopChan chan bool
}

// NewStaleLocationJob creates a new stale location sweeper
func NewStaleLocationJob() *StaleLocationJob {
	return &StaleLocationJob{
		interval: 1 * time.Hour,
		stopChan: make(chan bool),
	}
}

// Start begins the sweeper
func (j *StaleLocationJob) Start() {
	go j.run()
	log.Println("🚀 Stale location job started")
}

// Stop stops the sweeper
func (j *StaleLocationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Stale location job stopped")
}

func (j *StaleLocationJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			return
		}
	}
}

// sweep clears the live location and derived map link on bookings that
// are finished and have not reported a position for a while.
func (j *StaleLocationJob) sweep() {
	cutoff := time.Now().Add(-staleAfter)

	result := database.DB.Model(&models.Booking{}).
		Where("status IN ?", []string{models.StatusCompleted, models.StatusCancelled}).
		Where("live_updated_at IS NOT NULL AND live_updated_at <= ?", cutoff).
		Updates(map[string]interface{}{
			"live_lat":        nil,
			"live_lng":        nil,
			"live_updated_at": nil,
			"map_url":         "",
		})

	if result.Error != nil {
		log.Printf("❌ Error sweeping stale locations: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("🧹 Cleared stale live locations on %d bookings", result.RowsAffected)
	}
}

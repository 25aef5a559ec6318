package cron

import (
	"log"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/services/backup"
	"github.com/robfig/cron/v3"
)

// Manager owns the scheduled background jobs: the per-minute metrics sampler
// and the optional hourly snapshot backup.
type Manager struct {
	cron     *cron.Cron
	store    *database.Store
	uploader *backup.Uploader
}

// NewManager creates a cron manager. uploader may be nil, in which case the
// backup job is not registered.
func NewManager(store *database.Store, uploader *backup.Uploader) *Manager {
	// Seconds precision to match the schedule specs below
	c := cron.New(cron.WithSeconds())

	return &Manager{
		cron:     c,
		store:    store,
		uploader: uploader,
	}
}

// Start registers and starts all jobs.
func (m *Manager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}
	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (m *Manager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *Manager) registerJobs() error {
	// Every minute: sample system metrics into the config singleton
	_, err := m.cron.AddFunc("0 * * * * *", m.SampleMetrics)
	if err != nil {
		return err
	}

	// Every hour: upload a document snapshot, when a bucket is configured
	if m.uploader != nil {
		_, err = m.cron.AddFunc("0 0 * * * *", m.SnapshotBackup)
		if err != nil {
			return err
		}
	}

	return nil
}

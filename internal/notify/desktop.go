package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Desktop shows notifications through the operating system's notification
// center. The OS call runs on its own goroutine; failures are logged.
type Desktop struct {
	appName string
	send    func(title, message string, icon any) error
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewDesktop creates a desktop notifier. appName prefixes every title.
func NewDesktop(appName string, logger *zap.Logger) *Desktop {
	return &Desktop{
		appName: appName,
		send:    beeep.Notify,
		logger:  logger,
	}
}

// Notify implements Notifier.
func (d *Desktop) Notify(n Notification) {
	title := n.Title
	if d.appName != "" {
		title = d.appName + ": " + title
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		// Empty icon lets beeep pick the platform default.
		if err := d.send(title, n.Description, ""); err != nil {
			d.logger.Warn("desktop notification failed", zap.Error(err), zap.String("title", title))
		}
	}()
}

// Wait blocks until in-flight notifications have been handed to the OS.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

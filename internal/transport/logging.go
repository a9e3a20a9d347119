package transport

import (
	applog "soundhub/internal/log"
)

// LoggingTransport implements the Transport interface by logging inventory
// messages instead of sending them anywhere. Useful for debugging and as the
// fallback when no network transport is enabled.
type LoggingTransport struct{}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	applog.Infof("Transport: Using LoggingTransport")
	return &LoggingTransport{}
}

// Send logs the received data at debug level.
func (lt *LoggingTransport) Send(data any) error {
	if msg, ok := data.(*InventoryMessage); ok {
		applog.Debugf("LOG_TRANSPORT: inventory seq=%d outputs=%d inputs=%d",
			msg.Seq, len(msg.Outputs), len(msg.Inputs))
		return nil
	}
	applog.Debugf("LOG_TRANSPORT: Received (%T): %+v", data, data)
	return nil // Logging transport never fails to "send"
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	applog.Debugf("LOG_TRANSPORT: Close called.")
	return nil
}

// Ensure LoggingTransport satisfies the interface at compile time.
var _ Transport = (*LoggingTransport)(nil)

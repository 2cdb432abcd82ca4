package logger

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/rs/zerolog"
)

const (
	defaultDataDogTimeout    = 5 * time.Second
	defaultDataDogBufferSize = 256
)

// logSubmitter is the part of the datadog logs api the writer needs.
type logSubmitter interface {
	SubmitLog(
		ctx context.Context,
		body []datadogV2.HTTPLogItem,
		o ...datadogV2.SubmitLogOptionalParameters,
	) (interface{}, *http.Response, error)
}

// DataDogWriter ships warn and above log events to datadog without blocking the caller.
// Events are queued on a bounded channel; when the queue is full the event is dropped.
type DataDogWriter struct {
	cfg      DataDog
	api      logSubmitter
	ctx      context.Context
	hostname string
	events   chan []byte
	done     chan struct{}
	mu       sync.RWMutex
	closed   bool
}

// NewDataDogWriter creates a writer using the datadog logs api client.
func NewDataDogWriter(cfg DataDog) (*DataDogWriter, error) {
	if cfg.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: cfg.APIKey},
		},
	)

	if cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	api := datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration()))

	return newDataDogWriter(ctx, cfg, api), nil
}

func newDataDogWriter(ctx context.Context, cfg DataDog, api logSubmitter) *DataDogWriter {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDataDogTimeout
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultDataDogBufferSize
	}

	hostname := cfg.Hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	w := &DataDogWriter{
		cfg:      cfg,
		api:      api,
		ctx:      ctx,
		hostname: hostname,
		events:   make(chan []byte, cfg.BufferSize),
		done:     make(chan struct{}),
	}

	go w.run()

	return w
}

// Write implements io.Writer. Events without level information are not shipped.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter.
func (w *DataDogWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < zerolog.WarnLevel || l >= zerolog.NoLevel {
		return len(p), nil
	}

	// zerolog reuses its buffers after the write returns
	event := make([]byte, len(p))
	copy(event, p)

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return len(p), nil
	}

	select {
	case w.events <- event:
	default:
	}

	return len(p), nil
}

// Close stops accepting events and waits until the queue is drained.
func (w *DataDogWriter) Close() error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
	w.mu.Unlock()

	<-w.done

	return nil
}

func (w *DataDogWriter) run() {
	defer close(w.done)

	for event := range w.events {
		w.submit(event)
	}
}

func (w *DataDogWriter) submit(event []byte) {
	ctx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(w.cfg.Source),
		Hostname: datadog.PtrString(w.hostname),
		Message:  string(event),
		Service:  datadog.PtrString(w.cfg.ServiceName),
	}

	if _, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item}); err != nil {
		// the global logger would feed this error back into the writer
		ErrorHandler(err)
	}
}

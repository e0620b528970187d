package uploader

import (
	"fmt"
	"sync"

	"github.com/forklift-io/forklift/pkg/client/transport"
	sshtransport "github.com/forklift-io/forklift/pkg/client/transport/ssh"
	"github.com/sirupsen/logrus"
)

// StrategySFTP is the keyword of the default SSH/SFTP upload strategy.
const StrategySFTP = "sftp"

// DefaultUploadRoot is the upload root used when options leave it empty.
const DefaultUploadRoot = "/tmp"

// Options configures an upload strategy.
type Options struct {
	// UploadRoot is the remote directory uploads land under; empty means
	// DefaultUploadRoot. A leading home marker ("~") is resolved against
	// the remote user's home at execution time.
	UploadRoot string

	// ConnectionFactory dials nodes; nil means the SSH factory.
	ConnectionFactory transport.ConnectionFactory

	// Transport moves scripts and streams; nil means the SSH transport.
	Transport transport.Transport

	// Logger receives structured upload logs; nil means the logrus
	// standard logger.
	Logger *logrus.Logger
}

func (options Options) withDefaults() Options {
	if options.UploadRoot == "" {
		options.UploadRoot = DefaultUploadRoot
	}

	if options.ConnectionFactory == nil {
		options.ConnectionFactory = sshtransport.NewFactory()
	}

	if options.Transport == nil {
		options.Transport = sshtransport.NewClient()
	}

	if options.Logger == nil {
		options.Logger = logrus.StandardLogger()
	}

	return options
}

// Constructor builds an upload strategy from options.
type Constructor func(options Options) (Uploader, error)

//nolint:gochecknoglobals // Process-wide strategy registry
var (
	strategiesMu sync.RWMutex
	strategies   = map[string]Constructor{
		StrategySFTP: func(options Options) (Uploader, error) {
			return NewSFTPUploader(options), nil
		},
	}
)

// Register adds an upload strategy under keyword, replacing any previous
// registration.
func Register(keyword string, constructor Constructor) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()

	strategies[keyword] = constructor
}

// New constructs the strategy registered under keyword.
func New(keyword string, options Options) (Uploader, error) {
	strategiesMu.RLock()
	constructor, ok := strategies[keyword]
	strategiesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, keyword)
	}

	return constructor(options)
}

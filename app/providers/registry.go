package providers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/open-content-bot/contentbot/app/config"
)

var (
	// ErrAdapterNotFound: no implementation is registered under the
	// requested provider name.
	ErrAdapterNotFound = errors.New("adapter not found")
	// ErrAdapterMisconfigured: an implementation exists but could not be
	// constructed, typically a missing credential.
	ErrAdapterMisconfigured = errors.New("adapter misconfigured")
)

var (
	textFactories  = map[string]TextFactory{}
	imageFactories = map[string]ImageFactory{}
)

// RegisterText registers a text adapter factory under a provider name.
// Called from adapter init() functions at process start; registering the
// same name twice is a programming error.
func RegisterText(name string, factory TextFactory) {
	if _, exists := textFactories[name]; exists {
		panic(fmt.Sprintf("text adapter %q registered twice", name))
	}
	textFactories[name] = factory
}

// RegisterImage registers an image adapter factory under a provider name.
func RegisterImage(name string, factory ImageFactory) {
	if _, exists := imageFactories[name]; exists {
		panic(fmt.Sprintf("image adapter %q registered twice", name))
	}
	imageFactories[name] = factory
}

// NewText resolves a provider name to a live text adapter. An unknown name
// is a configuration error naming both the requested provider and the
// registration convention, so operators can fix the config quickly.
func NewText(name string, cfg config.ProcessorConfig, deps Deps) (TextAdapter, error) {
	factory, ok := textFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: expected a text adapter registered for provider %q in the providers registry (known providers: %s)",
			ErrAdapterNotFound, name, knownNames(textFactories))
	}

	adapter, err := factory(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("%w: text adapter %q: %v", ErrAdapterMisconfigured, name, err)
	}
	return adapter, nil
}

// NewImage resolves a provider name to a live image adapter.
func NewImage(name string, cfg config.ImageConfig, deps Deps) (ImageAdapter, error) {
	factory, ok := imageFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: expected an image adapter registered for provider %q in the providers registry (known providers: %s)",
			ErrAdapterNotFound, name, knownNames(imageFactories))
	}

	adapter, err := factory(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("%w: image adapter %q: %v", ErrAdapterMisconfigured, name, err)
	}
	return adapter, nil
}

func knownNames[T any](factories map[string]T) string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

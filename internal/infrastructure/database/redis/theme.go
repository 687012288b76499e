package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

const (
	// themeKey is the shared key holding the current theme value.
	themeKey = "theme"
	// themeChannel carries change notifications for subscribers.
	themeChannel = "theme:changed"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeStore holds the shared dark/light theme flag in Redis and notifies
// subscribers of changes over pub/sub.  It satisfies the map session's need
// for a synchronous current read plus asynchronous change notification.
type ThemeStore struct {
	client *Client
	logger logging.Logger
}

// NewThemeStore builds a ThemeStore over an existing client.
func NewThemeStore(client *Client, logger logging.Logger) *ThemeStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ThemeStore{client: client, logger: logger}
}

// Current reads the theme key synchronously.  A missing key reads as
// "light"; a watcher started after the value was first written still sees
// the current value, not only future changes.
func (s *ThemeStore) Current(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, themeKey)
	if err == goredis.Nil {
		return ThemeLight, nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCacheError, "failed to read theme")
	}
	return val, nil
}

// Set writes the theme key and publishes the new value to subscribers.
func (s *ThemeStore) Set(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.InvalidParam("theme must be \"light\" or \"dark\"")
	}
	if err := s.client.Set(ctx, themeKey, theme, 0); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to store theme")
	}
	if err := s.client.Publish(ctx, themeChannel, theme); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to publish theme change")
	}
	return nil
}

// Watch invokes onChange with each published theme value until ctx is
// cancelled.  It returns immediately; delivery happens on a background
// goroutine.
func (s *ThemeStore) Watch(ctx context.Context, onChange func(theme string)) error {
	sub, err := s.client.Subscribe(ctx, themeChannel)
	if err != nil {
		return err
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onChange(msg.Payload)
			}
		}
	}()
	return nil
}

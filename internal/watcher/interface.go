package watcher

import "context"

// Watcher feeds audio files dropped into the inbox to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one inbox file.
type EventHandler func(ctx context.Context, filePath string) error

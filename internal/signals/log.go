package signals

import (
	"context"
	"log/slog"

	"github.com/zoobzio/capitan"
)

// LogTo hooks every viewer signal and writes it to log. Drag signals are
// logged at debug level.
func LogTo(log *slog.Logger) {
	capitan.Hook(PairMounted, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		index, _ := KeyIndex.From(e)
		log.InfoContext(ctx, "pair mounted", "title", title, "index", index)
	})

	capitan.Hook(PairUnmounted, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		log.DebugContext(ctx, "pair unmounted", "title", title)
	})

	capitan.Hook(PairLoadFailed, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		errMsg, _ := KeyError.From(e)
		log.ErrorContext(ctx, "pair load failed", "title", title, "error", errMsg)
	})

	capitan.Hook(PairChanged, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		path, _ := KeyPath.From(e)
		log.InfoContext(ctx, "image changed on disk", "title", title, "path", path)
	})

	capitan.Hook(DragStarted, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		pos, _ := KeyPosition.From(e)
		log.DebugContext(ctx, "drag started", "title", title, "position", pos)
	})

	capitan.Hook(DragEnded, func(ctx context.Context, e *capitan.Event) {
		title, _ := KeyTitle.From(e)
		pos, _ := KeyPosition.From(e)
		log.DebugContext(ctx, "drag ended", "title", title, "position", pos)
	})
}

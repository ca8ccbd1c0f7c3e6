// Package browser provides an in-memory tab strip that the omnibox commit
// dispatcher drives. It records the browser events a real engine would emit
// (tab selection, page loads) so callers can observe what a commit did.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/bnema/omnibar/internal/application/port"
	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/logging"
)

var (
	// ErrTabNotFound is returned when a tab ID does not exist.
	ErrTabNotFound = errors.New("tab not found")
	// ErrNoActiveTab is returned when a load is requested with no tabs open.
	ErrNoActiveTab = errors.New("no active tab")
)

const logURLMaxLen = 60

// EventKind names a browser event.
type EventKind int

const (
	EventTabOpen EventKind = iota
	EventTabClose
	EventTabSelect
	EventLoad
)

func (k EventKind) String() string {
	switch k {
	case EventTabOpen:
		return "tab-open"
	case EventTabClose:
		return "tab-close"
	case EventTabSelect:
		return "tab-select"
	case EventLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after the tab state changed.
type Event struct {
	Kind  EventKind
	TabID entity.TabID
	URL   string
}

// Browser is a thread-safe in-memory tab strip.
type Browser struct {
	mu        sync.Mutex
	tabs      *entity.TabList
	nextID    int
	listeners map[int]func(Event)
	nextSub   int
	ctx       context.Context
}

var (
	_ port.TabSwitcher = (*Browser)(nil)
	_ port.PageLoader  = (*Browser)(nil)
	_ port.TabLister   = (*Browser)(nil)
)

// New creates a browser with no tabs.
func New(ctx context.Context) *Browser {
	return &Browser{
		tabs:      entity.NewTabList(),
		listeners: make(map[int]func(Event)),
		ctx:       logging.WithComponent(ctx, "browser"),
	}
}

// Subscribe registers fn for every event. The returned function removes it.
// Listeners run synchronously on the goroutine that caused the event.
func (b *Browser) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// OpenTab adds a tab showing url. With foreground set it becomes active.
// The first tab is always active.
func (b *Browser) OpenTab(ctx context.Context, url string, foreground bool) entity.Tab {
	b.mu.Lock()
	b.nextID++
	tab := entity.NewTab(entity.TabID("tab-"+strconv.Itoa(b.nextID)), url)
	tab.LoadCount = 1
	first := b.tabs.Count() == 0
	b.tabs.Add(tab)
	events := []Event{
		{Kind: EventTabOpen, TabID: tab.ID, URL: url},
		{Kind: EventLoad, TabID: tab.ID, URL: url},
	}
	if foreground && !first {
		b.tabs.SetActive(tab.ID)
		events = append(events, Event{Kind: EventTabSelect, TabID: tab.ID})
	}
	snapshot := *tab
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(snapshot.ID)).
		Str("url", logging.TruncateURL(url, logURLMaxLen)).
		Bool("foreground", foreground).
		Msg("tab opened")
	b.emit(events...)
	return snapshot
}

// CloseTab removes a tab. Closing the active tab activates its neighbour.
func (b *Browser) CloseTab(ctx context.Context, id entity.TabID) error {
	b.mu.Lock()
	wasActive := b.tabs.ActiveTabID == id
	if !b.tabs.Remove(id) {
		b.mu.Unlock()
		return fmt.Errorf("close %s: %w", id, ErrTabNotFound)
	}
	events := []Event{{Kind: EventTabClose, TabID: id}}
	if wasActive && b.tabs.ActiveTabID != "" {
		events = append(events, Event{Kind: EventTabSelect, TabID: b.tabs.ActiveTabID})
	}
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("tab_id", string(id)).Msg("tab closed")
	b.emit(events...)
	return nil
}

// SwitchToTab focuses an existing tab. Selecting the active tab emits nothing.
func (b *Browser) SwitchToTab(ctx context.Context, id entity.TabID) error {
	b.mu.Lock()
	if b.tabs.Find(id) == nil {
		b.mu.Unlock()
		return fmt.Errorf("switch to %s: %w", id, ErrTabNotFound)
	}
	if b.tabs.ActiveTabID == id {
		b.mu.Unlock()
		return nil
	}
	b.tabs.SetActive(id)
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("tab_id", string(id)).Msg("tab selected")
	b.emit(Event{Kind: EventTabSelect, TabID: id})
	return nil
}

// LoadInActiveTab navigates the active tab to url.
func (b *Browser) LoadInActiveTab(ctx context.Context, url string) error {
	b.mu.Lock()
	tab := b.tabs.ActiveTab()
	if tab == nil {
		b.mu.Unlock()
		return ErrNoActiveTab
	}
	tab.URL = url
	tab.Title = ""
	tab.LoadCount++
	id := tab.ID
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(id)).
		Str("url", logging.TruncateURL(url, logURLMaxLen)).
		Msg("page load started")
	b.emit(Event{Kind: EventLoad, TabID: id, URL: url})
	return nil
}

// ActiveTab returns a copy of the active tab.
func (b *Browser) ActiveTab() (entity.Tab, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab := b.tabs.ActiveTab()
	if tab == nil {
		return entity.Tab{}, false
	}
	return *tab, true
}

// Tab returns a copy of the tab with id.
func (b *Browser) Tab(id entity.TabID) (entity.Tab, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab := b.tabs.Find(id)
	if tab == nil {
		return entity.Tab{}, false
	}
	return *tab, true
}

// Tabs returns copies of all tabs in strip order.
func (b *Browser) Tabs() []entity.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Tab, 0, b.tabs.Count())
	for _, tab := range b.tabs.Tabs {
		out = append(out, *tab)
	}
	return out
}

func (b *Browser) emit(events ...Event) {
	b.mu.Lock()
	listeners := make([]func(Event), 0, len(b.listeners))
	for i := 0; i < b.nextSub; i++ {
		if fn, ok := b.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	b.mu.Unlock()

	for _, ev := range events {
		logging.FromContext(b.ctx).Trace().
			Str("event", ev.Kind.String()).
			Str("tab_id", string(ev.TabID)).
			Msg("browser event")
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTool indicates an invocation named a tool that is not
// registered. It propagates to the transport as a protocol fault; it is
// never rendered into a text response.
var ErrUnknownTool = errors.New("tool: unknown tool")

// Descriptor is the static metadata published for one tool.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// Content is one returned block. Handlers produce text blocks only.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextContent wraps literal text in a content block.
func TextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// Handler executes one invocation. Handlers do not return errors: every
// data-fetch failure must resolve to descriptive text content.
type Handler func(ctx context.Context, args map[string]any) []Content

// Catalog holds the registered tools in registration order. Registration
// happens at startup; the catalog is read-only afterwards, so concurrent
// invocations need no locking.
type Catalog struct {
	order    []string
	handlers map[string]Handler
	byName   map[string]Descriptor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		handlers: make(map[string]Handler),
		byName:   make(map[string]Descriptor),
	}
}

// Register adds a tool. Names must be unique and non-empty.
func (c *Catalog) Register(descriptor Descriptor, handler Handler) error {
	if c == nil {
		return errors.New("tool: catalog is nil")
	}
	name := strings.TrimSpace(descriptor.Name)
	if name == "" {
		return errors.New("tool: descriptor name is empty")
	}
	if handler == nil {
		return fmt.Errorf("tool: handler for %q is nil", name)
	}
	if _, exists := c.byName[name]; exists {
		return fmt.Errorf("tool: %q is already registered", name)
	}
	c.order = append(c.order, name)
	c.byName[name] = descriptor
	c.handlers[name] = handler
	return nil
}

// Descriptors returns the published tools in registration order.
func (c *Catalog) Descriptors() []Descriptor {
	if c == nil {
		return nil
	}
	out := make([]Descriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Call routes an invocation by name. The only error it returns is
// ErrUnknownTool; handler outcomes are always content.
func (c *Catalog) Call(ctx context.Context, name string, args map[string]any) ([]Content, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	handler, ok := c.handlers[name]
	if !ok {
		emitInvokeObservation(InvokeObservation{ToolName: name, Success: false, ErrorCode: "UNKNOWN_TOOL"})
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	start := time.Now()
	content := handler(ctx, args)
	emitInvokeObservation(InvokeObservation{
		ToolName:   name,
		DurationMS: time.Since(start).Milliseconds(),
		Success:    true,
	})
	return content, nil
}

// Package chat implements the streaming orchestrator: the per-send workflow
// that appends the user message, optionally gathers web-search context,
// opens a cancellable provider stream, and keeps exactly one assistant
// message updated with the full accumulated text until the stream ends,
// errors, or is stopped.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"nexus/model"
	"nexus/storage"
)

const (
	// StopMarker replaces the content of a cancelled response. Cancellation
	// is a hard stop: partial text is discarded, not preserved.
	StopMarker = "Response stopped."

	// ErrorText replaces the content of a response that failed in transit.
	ErrorText = "Sorry, an error occurred. Please try again."
)

// Searcher is the web-search collaborator. It is best effort: failures are
// swallowed and the send proceeds without citations.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.WebSource, error)
}

// Gateways resolves the provider gateway for a vendor tag. A resolution
// error is a configuration error (unknown vendor, missing credential) and
// is surfaced to the user before any network call.
type Gateways interface {
	Get(id model.ProviderID) (model.Provider, error)
}

// sendHandle is the cancellation handle for one in-flight send.
type sendHandle struct {
	cancel context.CancelFunc
}

// Orchestrator coordinates sends across conversations. All conversation
// state flows through the store's repository operations; every streamed
// update is scoped by the (conversation, message) pair captured at stream
// start, so deltas from an abandoned stream can never touch another
// conversation.
type Orchestrator struct {
	store    *storage.Store
	gateways Gateways
	searcher Searcher

	mu     sync.Mutex
	active map[string]*sendHandle // keyed by conversation id
}

// New builds an orchestrator. searcher may be nil to disable web search.
func New(store *storage.Store, gateways Gateways, searcher Searcher) *Orchestrator {
	return &Orchestrator{
		store:    store,
		gateways: gateways,
		searcher: searcher,
		active:   make(map[string]*sendHandle),
	}
}

// SendOptions controls one send invocation.
type SendOptions struct {
	// ConversationID targets a specific conversation. Empty targets the
	// active conversation, creating one with the default model and persona
	// when none is active.
	ConversationID string

	// WebSearch requests search-augmented context for this send. It is
	// still subject to the global EnableWebSearch setting.
	WebSearch bool
}

// Send runs the full send protocol for one user message and blocks until
// the assistant message reaches a terminal state. It returns the assistant
// message id, or "" when the target conversation disappeared before the
// send could start. All recoverable errors are converted into message-state
// updates; nothing propagates.
func (o *Orchestrator) Send(ctx context.Context, content string, opts SendOptions) string {
	convID := opts.ConversationID
	if convID == "" {
		convID = o.store.CurrentConversationID()
	}
	if convID == "" {
		convID = o.store.CreateConversation("", "")
	}

	// The stored user message is always the raw text; search augmentation
	// only ever touches the outbound copy.
	if o.store.AddMessage(convID, model.Message{Role: model.RoleUser, Content: content}) == "" {
		return ""
	}

	return o.run(ctx, convID, content, opts.WebSearch)
}

// Regenerate re-answers the most recent user message of the conversation
// (the active one when conversationID is empty), with web search disabled.
// The previous assistant answer is replaced, not duplicated: everything
// after the last user message is deleted before the stream re-runs.
func (o *Orchestrator) Regenerate(ctx context.Context, conversationID string) string {
	convID := conversationID
	if convID == "" {
		convID = o.store.CurrentConversationID()
	}

	conv, ok := o.store.Conversation(convID)
	if !ok {
		return ""
	}
	last, ok := conv.LastUserMessage()
	if !ok {
		return ""
	}

	drop := false
	for _, m := range conv.Messages {
		if drop {
			o.store.DeleteMessage(convID, m.ID)
		}
		if m.ID == last.ID {
			drop = true
		}
	}

	return o.run(ctx, convID, last.Content, false)
}

// Stop cancels the in-flight send for the given conversation (the active
// one when conversationID is empty). A no-op when nothing is streaming.
func (o *Orchestrator) Stop(conversationID string) {
	if conversationID == "" {
		conversationID = o.store.CurrentConversationID()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if h, ok := o.active[conversationID]; ok {
		h.cancel()
	}
}

// run executes the protocol from the search step onward; the user message
// is already in place.
func (o *Orchestrator) run(ctx context.Context, convID, content string, webSearch bool) string {
	o.preempt(convID)

	conv, ok := o.store.Conversation(convID)
	if !ok {
		return ""
	}

	var sources []model.WebSource
	if webSearch && o.store.Settings().EnableWebSearch && o.searcher != nil {
		results, err := o.searcher.Search(ctx, content)
		if err != nil {
			// Search is context, not a dependency: degrade to no citations.
			log.Debug().Err(err).Msg("web search failed")
		}
		sources = results
	}

	msgID := o.store.AddMessage(convID, model.Message{
		Role:        model.RoleAssistant,
		Content:     "",
		Model:       conv.Model,
		IsStreaming: true,
		Sources:     sources,
	})
	if msgID == "" {
		return ""
	}

	o.stream(ctx, conv, convID, msgID, content, sources)
	return msgID
}

// preempt invalidates the previous cancellation handle for the conversation
// and finalizes any message it may still have been streaming into, keeping
// at most one in-flight generation per conversation.
func (o *Orchestrator) preempt(convID string) {
	o.mu.Lock()
	if h, ok := o.active[convID]; ok {
		h.cancel()
		delete(o.active, convID)
	}
	o.mu.Unlock()

	if conv, ok := o.store.Conversation(convID); ok {
		for _, m := range conv.Messages {
			if m.IsStreaming {
				o.finalize(convID, m.ID, StopMarker)
			}
		}
	}
}

func (o *Orchestrator) stream(ctx context.Context, conv model.Conversation, convID, msgID, content string, sources []model.WebSource) {
	aiModel, ok := model.ModelByID(conv.Model)
	if !ok {
		o.finalize(convID, msgID, fmt.Sprintf("Model %q is not configured. Pick another model and try again.", conv.Model))
		return
	}
	if !aiModel.IsAvailable {
		o.finalize(convID, msgID, fmt.Sprintf("%s is currently unavailable. Pick another model and try again.", aiModel.Name))
		return
	}

	gateway, err := o.gateways.Get(aiModel.Provider)
	if err != nil {
		log.Warn().Err(err).Str("provider", string(aiModel.Provider)).Msg("provider gateway unavailable")
		o.finalize(convID, msgID, err.Error())
		return
	}

	req := buildRequest(conv, aiModel, o.systemPrompt(conv), content, sources)

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	handle := o.register(convID, cancel)
	defer o.release(convID, handle)

	var acc strings.Builder
	err = gateway.Chat(streamCtx, req, func(delta string) error {
		if err := streamCtx.Err(); err != nil {
			return err
		}
		acc.WriteString(delta)
		full := acc.String()
		o.store.UpdateStreamingMessage(convID, msgID, storage.MessageUpdate{Content: &full})
		return nil
	})

	// A cancelled stream context always means user cancellation, whatever
	// error shape the gateway surfaced it as (gRPC-based vendors report a
	// status error rather than context.Canceled).
	switch {
	case err == nil:
		o.finalize(convID, msgID, acc.String())
	case errors.Is(err, context.Canceled) || streamCtx.Err() != nil:
		o.finalize(convID, msgID, StopMarker)
	default:
		log.Warn().Err(err).Str("conversation", convID).Str("model", conv.Model).Msg("stream failed")
		o.finalize(convID, msgID, ErrorText)
	}
}

// finalize writes the terminal content and clears the streaming flag. Safe
// against stale references: a deleted conversation or message makes this a
// no-op.
func (o *Orchestrator) finalize(convID, msgID, content string) {
	streaming := false
	o.store.UpdateMessage(convID, msgID, storage.MessageUpdate{Content: &content, IsStreaming: &streaming})
}

func (o *Orchestrator) systemPrompt(conv model.Conversation) string {
	if p, ok := o.store.PersonaByID(conv.Persona); ok {
		return p.SystemPrompt
	}
	if personas := o.store.Personas(); len(personas) > 0 {
		return personas[0].SystemPrompt
	}
	return ""
}

func (o *Orchestrator) register(convID string, cancel context.CancelFunc) *sendHandle {
	o.mu.Lock()
	defer o.mu.Unlock()

	if prev, ok := o.active[convID]; ok {
		prev.cancel()
	}
	h := &sendHandle{cancel: cancel}
	o.active[convID] = h
	return h
}

// release clears the handle only if it is still ours; a newer send may
// already have replaced it.
func (o *Orchestrator) release(convID string, h *sendHandle) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active[convID] == h {
		delete(o.active, convID)
	}
}

// buildRequest reduces the conversation history (which at this point ends
// with the user message, the assistant placeholder being excluded by
// snapshot order) to the outbound {role, content} form. When sources were
// found, only the outbound copy of the final user message is rewritten with
// the citation context.
func buildRequest(conv model.Conversation, aiModel model.AIModel, systemPrompt, content string, sources []model.WebSource) model.ChatRequest {
	messages := make([]model.ChatMessage, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		messages = append(messages, model.ChatMessage{Role: m.Role, Content: m.Content})
	}

	if len(sources) > 0 && len(messages) > 0 {
		messages[len(messages)-1].Content = augmentWithSources(content, sources)
	}

	return model.ChatRequest{
		Model:        aiModel.ID,
		SystemPrompt: systemPrompt,
		Messages:     messages,
	}
}

// augmentWithSources embeds search results as labeled citations ahead of
// the original question, with an instruction to cite them.
func augmentWithSources(content string, sources []model.WebSource) string {
	var b strings.Builder
	b.WriteString("Based on the following web search results:\n\n")
	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s](%s): %s", s.Title, s.URL, s.Snippet)
	}
	fmt.Fprintf(&b, "\n\nUser question: %s\n\nProvide a comprehensive answer with citations to the sources.", content)
	return b.String()
}

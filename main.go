package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nexus/chat"
	"nexus/config"
	"nexus/model"
	"nexus/provider"
	"nexus/search"
	"nexus/storage"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	config.InitLogging(cfg.DataDir())

	persister, err := storage.NewFilePersister(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewStore(persister)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load state: %v\n", err)
		os.Exit(1)
	}

	if cfg.DefaultModel != "" {
		store.UpdateSettings(storage.SettingsUpdate{DefaultModel: &cfg.DefaultModel})
	}
	if cfg.DefaultPersona != "" {
		store.UpdateSettings(storage.SettingsUpdate{DefaultPersona: &cfg.DefaultPersona})
	}

	registry := provider.NewRegistry(map[model.ProviderID]provider.Config{
		model.ProviderGroq:       {APIKey: cfg.Providers.Groq.APIKey, BaseURL: cfg.Providers.Groq.BaseURL},
		model.ProviderGoogle:     {APIKey: cfg.Providers.Google.APIKey, BaseURL: cfg.Providers.Google.BaseURL},
		model.ProviderOpenRouter: {APIKey: cfg.Providers.OpenRouter.APIKey, BaseURL: cfg.Providers.OpenRouter.BaseURL},
		model.ProviderFireworks:  {APIKey: cfg.Providers.Fireworks.APIKey, BaseURL: cfg.Providers.Fireworks.BaseURL},
	})

	index, err := storage.OpenSearchIndex(filepath.Join(cfg.DataDir(), "search.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open search index: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()

	orchestrator := chat.New(store, registry, search.NewClient())
	runChatLoop(store, orchestrator, index)
}

// runChatLoop is a minimal line-oriented front end over the store and
// orchestrator. Anything not starting with "/" is sent as a message.
func runChatLoop(store *storage.Store, orchestrator *chat.Orchestrator, index *storage.SearchIndex) {
	fmt.Printf("nexus %s - /new, /list, /models, /search <query>, /find <query>, /regen, /export, /quit\n", Version)
	if conv, ok := store.CurrentConversation(); ok {
		fmt.Printf("Continuing %q\n", conv.Title)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/new":
			store.CreateConversation("", "")
			fmt.Println("Started a new conversation.")
		case line == "/list":
			for _, c := range store.Conversations() {
				marker := " "
				if c.ID == store.CurrentConversationID() {
					marker = "*"
				}
				fmt.Printf("%s %s (%d messages)\n", marker, c.Title, len(c.Messages))
			}
		case line == "/models":
			for _, m := range model.AvailableModels() {
				fmt.Printf("%-40s %s\n", m.ID, m.Name)
			}
		case strings.HasPrefix(line, "/search "):
			sendMessage(store, orchestrator, strings.TrimPrefix(line, "/search "), true)
		case strings.HasPrefix(line, "/find "):
			findInHistory(store, index, strings.TrimPrefix(line, "/find "))
		case line == "/regen":
			msgID := orchestrator.Regenerate(context.Background(), "")
			if msgID == "" {
				fmt.Println("Nothing to regenerate.")
				break
			}
			printMessage(store, msgID)
		case line == "/export":
			label := "all"
			if conv, ok := store.CurrentConversation(); ok {
				label = conv.Title
			}
			path := storage.GenerateExportPath(label)
			if err := store.ExportToJSON(path); err != nil {
				fmt.Printf("Export failed: %v\n", err)
				break
			}
			fmt.Printf("Exported to %s\n", path)
		case strings.HasPrefix(line, "/"):
			fmt.Printf("Unknown command: %s\n", line)
		default:
			sendMessage(store, orchestrator, line, false)
		}
	}
}

func sendMessage(store *storage.Store, orchestrator *chat.Orchestrator, content string, webSearch bool) {
	msgID := orchestrator.Send(context.Background(), content, chat.SendOptions{WebSearch: webSearch})
	if msgID == "" {
		fmt.Println("Send failed: conversation no longer exists.")
		return
	}
	printMessage(store, msgID)
}

func printMessage(store *storage.Store, msgID string) {
	conv, ok := store.CurrentConversation()
	if !ok {
		return
	}
	for _, m := range conv.Messages {
		if m.ID == msgID {
			fmt.Println(m.Content)
			for _, s := range m.Sources {
				fmt.Printf("  [%s] %s\n", s.Title, s.URL)
			}
			return
		}
	}
}

// findInHistory searches past conversations: fuzzy over titles, substring
// over message content via the sqlite index, rebuilt on each query.
func findInHistory(store *storage.Store, index *storage.SearchIndex, query string) {
	conversations := store.Conversations()

	for _, c := range storage.SearchTitles(conversations, query) {
		fmt.Printf("# %s (%d messages)\n", c.Title, len(c.Messages))
	}

	if err := index.Reindex(conversations); err != nil {
		fmt.Printf("Search failed: %v\n", err)
		return
	}
	matches, err := index.SearchMessages(query)
	if err != nil {
		fmt.Printf("Search failed: %v\n", err)
		return
	}
	for _, m := range matches {
		fmt.Printf("%s [%s]: %s\n", m.ConversationTitle, m.Role, m.Preview)
	}
	if len(matches) == 0 {
		fmt.Println("No matches.")
	}
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dummyblog/models"
	"dummyblog/services"
)

// Терминальный клиент чата поверх echo-сервера.
// Использует bounded-retry транспорт, чтобы переживать короткие обрывы сети.
func main() {
	var (
		chatURL    string
		username   string
		policy     string
		pendingTTL int
	)
	flag.StringVar(&chatURL, "url", "wss://echo.websocket.org", "Chat endpoint URL")
	flag.StringVar(&username, "username", "Guest", "Chat username")
	flag.StringVar(&policy, "policy", services.PolicyBoundedRetry, "Reconnect policy: fire-once or bounded-retry")
	flag.IntVar(&pendingTTL, "pending-ttl", 0, "Pending echo TTL in seconds, 0 keeps the default")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := services.NewChatTransport(chatURL, policy)
	session := services.NewChatSession(transport, username, nil)
	session.SetPendingTTL(time.Duration(pendingTTL) * time.Second)
	session.OnAppend(func(msg models.ChatMessage) {
		fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format("15:04:05"), msg.Username, msg.Text)
	})

	if err := session.Start(ctx); err != nil {
		log.Fatalf("Failed to connect to %s: %v", chatURL, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		session.Stop()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" {
			break
		}
		if err := session.Send(text); err != nil {
			log.Printf("Cannot send message: %v", err)
		}
	}

	session.Stop()
}

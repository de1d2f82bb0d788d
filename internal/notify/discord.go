package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"taskmaster/internal/logging"
)

// DiscordNotifier posts task notifications to a Discord channel. Optional:
// wired only when a bot token is configured.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier opens a Discord session for the given bot token
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// Close shuts down the Discord session
func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}

func (n *DiscordNotifier) TaskAdded(title string) {
	n.send(fmt.Sprintf("Task added: **%s**", title))
}

func (n *DiscordNotifier) TaskCompleted(title string) {
	n.send(fmt.Sprintf("Task completed: **%s** ✅", title))
}

func (n *DiscordNotifier) TimerFinished(mode string) {
	if mode == "focus" {
		n.send("Focus session finished, time for a break ☕")
		return
	}
	n.send("Break's over, back to focus 🔔")
}

func (n *DiscordNotifier) send(message string) {
	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		logging.Warn("notify", "discord send failed: %v", err)
	}
}

// Package bot is the Telegram front-end mirroring the web API. Commands
// are stateless; the author identity for audit entries comes from the
// chat sender.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"banwatch/internal/credstore"
	"banwatch/internal/modules/ban"
)

// sourceTag distinguishes bot-driven admin mutations in the audit log.
const sourceTag = "Telegram"

type Bot struct {
	bot    *tele.Bot
	bans   *ban.Service
	admins *credstore.Store
}

func New(token string, bans *ban.Service, admins *credstore.Store) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 30 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Printf("bot: command error: %v", err)
			if c != nil {
				_ = c.Send("An error occurred while handling the command.")
			}
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bw := &Bot{bot: b, bans: bans, admins: admins}
	bw.registerHandlers()
	return bw, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/checkban", b.handleCheckBan)
	b.bot.Handle("/banlist", b.handleBanList)
	b.bot.Handle("/search", b.handleSearch)
	b.bot.Handle("/banstats", b.handleBanStats)
	b.bot.Handle("/addadmin", b.handleAddAdmin)
	b.bot.Handle("/deladmin", b.handleDelAdmin)
	b.bot.Handle("/listadmins", b.handleListAdmins)
	b.bot.Handle("/help_game", b.handleHelp)
}

// Start blocks on long polling until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	log.Printf("bot: %s connected, polling", b.bot.Me.Username)
	b.bot.Start()
}

func author(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return "unknown"
	}
	if sender.Username != "" {
		return sender.Username
	}
	return strconv.FormatInt(sender.ID, 10)
}

func (b *Bot) handleCheckBan(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("Please provide a player ID. Usage: /checkban <player_id>")
	}
	playerID := args[0]

	found, err := b.bans.Check(context.Background(), playerID)
	if err != nil {
		log.Printf("bot: checkban %s: %v", playerID, err)
		return c.Send("Failed to check ban, try again later.")
	}
	if found == nil {
		return c.Send(fmt.Sprintf("Player %s is not banned.", playerID))
	}
	return c.Send(formatBan(found), tele.ModeHTML)
}

func (b *Bot) handleBanList(c tele.Context) error {
	page := 1
	if args := c.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Send("Invalid page number. Usage: /banlist [page]")
		}
		page = n
	}

	p, err := b.bans.PageOf(context.Background(), page)
	if err != nil {
		log.Printf("bot: banlist: %v", err)
		return c.Send("Failed to load the ban list, try again later.")
	}
	if p.Total == 0 {
		return c.Send("There are no banned players right now.")
	}
	return c.Send(formatBanPage(p), tele.ModeHTML)
}

func (b *Bot) handleSearch(c tele.Context) error {
	term := strings.TrimSpace(c.Message().Payload)
	if term == "" {
		return c.Send("Please provide a search term. Usage: /search <id or name>")
	}

	bans, err := b.bans.Search(context.Background(), term)
	if err != nil {
		log.Printf("bot: search %q: %v", term, err)
		return c.Send("Search failed, try again later.")
	}
	if len(bans) == 0 {
		return c.Send(fmt.Sprintf("No results for: %s", term))
	}
	return c.Send(formatSearchResults(term, bans), tele.ModeHTML)
}

func (b *Bot) handleBanStats(c tele.Context) error {
	stats, err := b.bans.Stats(context.Background())
	if err != nil {
		log.Printf("bot: banstats: %v", err)
		return c.Send("Failed to load stats, try again later.")
	}
	return c.Send(formatStats(stats), tele.ModeHTML)
}

func (b *Bot) handleAddAdmin(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send("Usage: /addadmin <username> <password>")
	}
	username, password := args[0], args[1]

	if !b.admins.AddAdmin(username, password, author(c), sourceTag) {
		return c.Send(fmt.Sprintf("Admin %s already exists.", username))
	}
	return c.Send(fmt.Sprintf("Admin %s created.", username))
}

func (b *Bot) handleDelAdmin(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("Usage: /deladmin <username>")
	}
	username := args[0]

	if !b.admins.DeleteAdmin(username, author(c), sourceTag) {
		return c.Send(fmt.Sprintf("Admin %s does not exist.", username))
	}
	return c.Send(fmt.Sprintf("Admin %s removed.", username))
}

func (b *Bot) handleListAdmins(c tele.Context) error {
	admins := b.admins.ListAdmins()
	if len(admins) == 0 {
		return c.Send("No admins found.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Admins (%d)</b>\n", len(admins))
	for _, a := range admins {
		fmt.Fprintf(&sb, "• %s\n", a.Username)
	}
	return c.Send(sb.String(), tele.ModeHTML)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send(`<b>Ban commands</b>
/checkban &lt;player_id&gt; — check whether a player is banned
/banlist [page] — list banned players
/search &lt;term&gt; — search players by id or name
/banstats — ban statistics

<b>Admin commands</b>
/addadmin &lt;user&gt; &lt;pass&gt; — add an admin
/deladmin &lt;user&gt; — remove an admin
/listadmins — list all admins

Use the web console to manage bans and admins.`, tele.ModeHTML)
}

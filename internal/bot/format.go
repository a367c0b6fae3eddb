package bot

import (
	"fmt"
	"strings"
	"time"

	"banwatch/internal/domain"
	"banwatch/internal/modules/ban"
)

const dateLayout = "02/01/2006 15:04"

func banTypeLabel(t domain.BanType) string {
	if t == domain.BanPermanent {
		return "Permanent"
	}
	return "Temporary"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func playerTitle(b *domain.Ban) string {
	if b.PlayerName != "" {
		return fmt.Sprintf("%s (%s)", b.PlayerID, b.PlayerName)
	}
	return b.PlayerID
}

func formatRemaining(b *domain.Ban) string {
	if remaining := b.TimeRemaining(); remaining != nil {
		return remaining.Round(time.Second).String()
	}
	return ""
}

func formatBan(b *domain.Ban) string {
	var sb strings.Builder
	sb.WriteString("<b>Player banned</b>\n")
	fmt.Fprintf(&sb, "Player: %s\n", playerTitle(b))
	fmt.Fprintf(&sb, "Reason: %s\n", b.Reason)
	fmt.Fprintf(&sb, "Type: %s\n", banTypeLabel(b.BanType))
	fmt.Fprintf(&sb, "Banned by: %s\n", b.BannedByUsername())
	fmt.Fprintf(&sb, "Date: %s\n", b.CreatedAt.Format(dateLayout))
	if b.BanType == domain.BanTemporary && b.ExpiresAt != nil {
		fmt.Fprintf(&sb, "Expires: %s\n", b.ExpiresAt.Format(dateLayout))
		if r := formatRemaining(b); r != "" {
			fmt.Fprintf(&sb, "Time remaining: %s\n", r)
		}
	}
	return sb.String()
}

func formatBanPage(p *ban.Page) string {
	var sb strings.Builder
	sb.WriteString("<b>Banned players</b>\n")
	fmt.Fprintf(&sb, "Active bans: %d — page %d of %d\n\n", p.Total, p.Number, p.TotalPages)

	for i := range p.Bans {
		b := &p.Bans[i]
		fmt.Fprintf(&sb, "<b>%s</b>\n", playerTitle(b))
		fmt.Fprintf(&sb, "Reason: %s\n", truncate(b.Reason, 100))
		fmt.Fprintf(&sb, "Type: %s · By: %s · %s\n", banTypeLabel(b.BanType), b.BannedByUsername(), b.CreatedAt.Format("02/01/2006"))
		if r := formatRemaining(b); r != "" {
			fmt.Fprintf(&sb, "Expires in: %s\n", r)
		}
		sb.WriteString("\n")
	}

	if p.Number < p.TotalPages {
		fmt.Fprintf(&sb, "Use /banlist %d for the next page", p.Number+1)
	}
	return sb.String()
}

func formatSearchResults(term string, bans []domain.Ban) string {
	var sb strings.Builder
	sb.WriteString("<b>Search results</b>\n")
	fmt.Fprintf(&sb, "Term: %s — %d found\n\n", term, len(bans))

	for i := range bans {
		b := &bans[i]
		status := "Active"
		if b.IsExpired() {
			status = "Expired"
		}
		fmt.Fprintf(&sb, "<b>%s</b> — %s\n", playerTitle(b), status)
		fmt.Fprintf(&sb, "Reason: %s\n", truncate(b.Reason, 100))
		fmt.Fprintf(&sb, "Type: %s · %s\n\n", banTypeLabel(b.BanType), b.CreatedAt.Format("02/01/2006"))
	}
	return sb.String()
}

func formatStats(st *ban.Stats) string {
	var sb strings.Builder
	sb.WriteString("<b>Ban statistics</b>\n")
	fmt.Fprintf(&sb, "Total bans: %d\n", st.Total)
	fmt.Fprintf(&sb, "Active bans: %d\n", st.Active)
	fmt.Fprintf(&sb, "Permanent: %d\n", st.Permanent)
	fmt.Fprintf(&sb, "Temporary: %d\n", st.Temporary)
	if st.TopStaff != "" {
		fmt.Fprintf(&sb, "Most active staff: %s (%d bans)\n", st.TopStaff, st.TopStaffCount)
	}
	return sb.String()
}

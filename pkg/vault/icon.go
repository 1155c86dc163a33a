package vault

import "strings"

// Icon identifies a well-known service. The set is closed: identifiers
// outside it are treated as "no icon".
type Icon string

const (
	IconNone      Icon = ""
	IconGoogle    Icon = "google"
	IconFacebook  Icon = "facebook"
	IconTwitter   Icon = "twitter"
	IconAmazon    Icon = "amazon"
	IconApple     Icon = "apple"
	IconMicrosoft Icon = "microsoft"
	IconGitHub    Icon = "github"
	IconDropbox   Icon = "dropbox"
	IconSlack     Icon = "slack"
	IconDiscord   Icon = "discord"
	IconLinkedIn  Icon = "linkedin"
	IconInstagram Icon = "instagram"
	IconReddit    Icon = "reddit"
	IconSteam     Icon = "steam"
)

type service struct {
	symbol string
	domain string
}

var services = map[Icon]service{
	IconGoogle:    {"Google", "google.com"},
	IconFacebook:  {"Facebook", "facebook.com"},
	IconTwitter:   {"Twitter", "twitter.com"},
	IconAmazon:    {"Amazon", "amazon.com"},
	IconApple:     {"Apple", "apple.com"},
	IconMicrosoft: {"Microsoft", "microsoft.com"},
	IconGitHub:    {"GitHub", "github.com"},
	IconDropbox:   {"Dropbox", "dropbox.com"},
	IconSlack:     {"Slack", "slack.com"},
	IconDiscord:   {"Discord", "discord.com"},
	IconLinkedIn:  {"LinkedIn", "linkedin.com"},
	IconInstagram: {"Instagram", "instagram.com"},
	IconReddit:    {"Reddit", "reddit.com"},
	IconSteam:     {"Steam", "steampowered.com"},
}

// Icons lists every known icon in display order.
var Icons = []Icon{
	IconGoogle, IconFacebook, IconTwitter, IconAmazon, IconApple,
	IconMicrosoft, IconGitHub, IconDropbox, IconSlack, IconDiscord,
	IconLinkedIn, IconInstagram, IconReddit, IconSteam,
}

// ParseIcon returns the icon for id, or IconNone when id is not a known identifier.
func ParseIcon(id string) Icon {
	i := Icon(strings.ToLower(strings.TrimSpace(id)))
	if !i.Valid() {
		return IconNone
	}
	return i
}

// Valid reports whether i is one of the known icons.
func (i Icon) Valid() bool {
	_, ok := services[i]
	return ok
}

// Symbol is the label rendered in place of a graphical icon.
// It is empty for unknown icons.
func (i Icon) Symbol() string {
	return services[i].symbol
}

// Domain is the service's web domain, empty for unknown icons.
func (i Icon) Domain() string {
	return services[i].domain
}

func (i Icon) String() string {
	return string(i)
}

// SuggestIcon maps an issuer name such as "Google" or "github.com" to its icon.
func SuggestIcon(issuer string) Icon {
	needle := strings.ToLower(strings.TrimSpace(issuer))
	if needle == "" {
		return IconNone
	}
	for _, icon := range Icons {
		svc := services[icon]
		if needle == string(icon) || needle == svc.domain || strings.ToLower(svc.symbol) == needle {
			return icon
		}
	}
	// "X" is the current name of Twitter
	if needle == "x" || needle == "x.com" {
		return IconTwitter
	}
	return IconNone
}

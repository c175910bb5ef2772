// Package cdn builds Discord CDN image URLs. These are pure string
// builders: no network calls and no validation beyond presence checks.
package cdn

import (
	"fmt"
	"math/big"

	"github.com/collabland/discord-miniapp-framework/internal/config"

	"github.com/google/go-querystring/query"
)

// DefaultImageSize is used when the caller does not override the size.
const DefaultImageSize = 128

// defaultAvatarCount is the number of built-in default avatars.
var defaultAvatarCount = big.NewInt(5)

type imageQuery struct {
	Size int `url:"size"`
}

func sizeQuery(size []int) string {
	resolved := DefaultImageSize
	if len(size) > 0 && size[0] > 0 {
		resolved = size[0]
	}

	values, err := query.Values(imageQuery{Size: resolved})
	if err != nil {
		// imageQuery is a fixed struct, encoding cannot fail
		return fmt.Sprintf("size=%d", resolved)
	}

	return values.Encode()
}

// DefaultAvatarIndex computes the default avatar index for a user without
// an avatar hash. User IDs are snowflakes that exceed 2^53, so the modulo
// must be taken with big-integer arithmetic rather than float64. IDs that
// fail to parse map to index 0.
func DefaultAvatarIndex(userID string) int {
	id, ok := new(big.Int).SetString(userID, 10)
	if !ok {
		return 0
	}

	return int(new(big.Int).Mod(id, defaultAvatarCount).Int64())
}

// UserAvatarURL returns the avatar URL for a user. When the avatar hash is
// empty the default avatar URL is returned, which carries no size
// parameter.
func UserAvatarURL(userID string, avatarHash string, size ...int) string {
	if avatarHash == "" {
		return fmt.Sprintf("%s/embed/avatars/%d.png", config.DiscordCDNBaseURL, DefaultAvatarIndex(userID))
	}

	return fmt.Sprintf("%s/avatars/%s/%s.webp?%s", config.DiscordCDNBaseURL, userID, avatarHash, sizeQuery(size))
}

// GuildIconURL returns the icon URL for a guild, or an empty string when
// the guild has no icon hash. There is no default guild icon.
func GuildIconURL(guildID string, iconHash string, size ...int) string {
	if iconHash == "" {
		return ""
	}

	return fmt.Sprintf("%s/icons/%s/%s.webp?%s", config.DiscordCDNBaseURL, guildID, iconHash, sizeQuery(size))
}

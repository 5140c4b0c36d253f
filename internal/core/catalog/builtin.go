package catalog

import "github.com/accountlens/accountlens/internal/core"

// builtinPlatforms is the curated catalog compiled into the binary. Tier 1
// platforms expose a usable data endpoint, tier 2 need a rendered page to
// classify, tier 3 are probed with plain HTTP content analysis.
var builtinPlatforms = []Platform{
	{
		ID: "github", Name: "GitHub", Category: "development", Tier: 1, Enabled: true,
		URLTemplate: "https://github.com/{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://api.github.com/users/{username}",
	},
	{
		ID: "reddit", Name: "Reddit", Category: "social", Tier: 1, Enabled: true,
		URLTemplate: "https://www.reddit.com/user/{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://www.reddit.com/user/{username}/about.json",
	},
	{
		ID: "bluesky", Name: "Bluesky", Category: "social", Tier: 1, Enabled: true,
		URLTemplate: "https://bsky.app/profile/{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://public.api.bsky.app/xrpc/app.bsky.actor.getProfile?actor={username}",
	},
	{
		ID: "medium", Name: "Medium", Category: "writing", Tier: 1, Enabled: true,
		URLTemplate: "https://medium.com/@{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://medium.com/@{username}?format=json",
	},
	{
		ID: "tiktok", Name: "TikTok", Category: "social", Tier: 1, Enabled: true,
		URLTemplate: "https://www.tiktok.com/@{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://www.tiktok.com/oembed?url=https://www.tiktok.com/@{username}",
	},
	{
		ID: "twitter", Name: "Twitter/X", Category: "social", Tier: 1, Enabled: true,
		URLTemplate: "https://x.com/{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://api.x.com/i/users/username_available.json?username={username}",
	},
	{
		ID: "npm", Name: "npm", Category: "development", Tier: 1, Enabled: true,
		URLTemplate: "https://www.npmjs.com/~{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://registry.npmjs.org/-/user/org.couchdb.user:{username}",
	},
	{
		ID: "vimeo", Name: "Vimeo", Category: "video", Tier: 1, Enabled: true,
		URLTemplate: "https://vimeo.com/{username}",
		Method:      core.MethodEndpoint,
		APIEndpoint: "https://vimeo.com/api/v2/{username}/info.json",
	},

	{
		ID: "instagram", Name: "Instagram", Category: "social", Tier: 2, Enabled: true,
		URLTemplate: "https://www.instagram.com/{username}/",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"sorry, this page isn't available",
			"page not found",
			"the link you followed may be broken",
		},
	},
	{
		ID: "facebook", Name: "Facebook", Category: "social", Tier: 2, Enabled: true,
		URLTemplate: "https://www.facebook.com/{username}",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"page not found",
			"content isn't available",
			"this content isn't available",
		},
	},
	{
		ID: "linkedin", Name: "LinkedIn", Category: "professional", Tier: 2, Enabled: true,
		URLTemplate: "https://www.linkedin.com/in/{username}",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"page not found",
			"profile not found",
			"this page doesn't exist",
			"this linkedin page isn't available",
		},
	},
	{
		ID: "youtube", Name: "YouTube", Category: "video", Tier: 2, Enabled: true,
		URLTemplate: "https://www.youtube.com/@{username}",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"this page isn't available",
			"this channel does not exist",
			"404 not found",
		},
	},
	{
		ID: "twitch", Name: "Twitch", Category: "streaming", Tier: 2, Enabled: true,
		URLTemplate: "https://www.twitch.tv/{username}",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"page not found",
			"sorry. unless you've got a time machine",
			"this channel is unavailable",
		},
	},
	{
		ID: "pinterest", Name: "Pinterest", Category: "social", Tier: 2, Enabled: true,
		URLTemplate: "https://www.pinterest.com/{username}/",
		Method:      core.MethodPage,
		NotFoundFragments: []string{
			"page not found",
			"sorry, we couldn't find that page",
		},
	},

	{
		ID: "gitlab", Name: "GitLab", Category: "development", Tier: 3, Enabled: true,
		URLTemplate: "https://gitlab.com/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "steam", Name: "Steam", Category: "gaming", Tier: 3, Enabled: true,
		URLTemplate: "https://steamcommunity.com/id/{username}",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"the specified profile could not be found",
		},
	},
	{
		ID: "soundcloud", Name: "SoundCloud", Category: "music", Tier: 3, Enabled: true,
		URLTemplate: "https://soundcloud.com/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "spotify", Name: "Spotify", Category: "music", Tier: 3, Enabled: true,
		URLTemplate: "https://open.spotify.com/user/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "telegram", Name: "Telegram", Category: "messaging", Tier: 3, Enabled: true,
		URLTemplate: "https://t.me/{username}",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"if you have telegram, you can contact",
		},
	},
	{
		ID: "keybase", Name: "Keybase", Category: "security", Tier: 3, Enabled: true,
		URLTemplate: "https://keybase.io/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "patreon", Name: "Patreon", Category: "creator", Tier: 3, Enabled: true,
		URLTemplate: "https://www.patreon.com/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "flickr", Name: "Flickr", Category: "photography", Tier: 3, Enabled: true,
		URLTemplate: "https://www.flickr.com/people/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "dribbble", Name: "Dribbble", Category: "design", Tier: 3, Enabled: true,
		URLTemplate: "https://dribbble.com/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "behance", Name: "Behance", Category: "design", Tier: 3, Enabled: true,
		URLTemplate: "https://www.behance.net/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "devto", Name: "DEV Community", Category: "development", Tier: 3, Enabled: true,
		URLTemplate: "https://dev.to/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "hackernews", Name: "Hacker News", Category: "development", Tier: 3, Enabled: true,
		URLTemplate: "https://news.ycombinator.com/user?id={username}",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"no such user",
		},
	},
	{
		ID: "producthunt", Name: "Product Hunt", Category: "technology", Tier: 3, Enabled: true,
		URLTemplate: "https://www.producthunt.com/@{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "goodreads", Name: "Goodreads", Category: "reading", Tier: 3, Enabled: true,
		URLTemplate: "https://www.goodreads.com/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "chesscom", Name: "Chess.com", Category: "gaming", Tier: 3, Enabled: true,
		URLTemplate: "https://www.chess.com/member/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "roblox", Name: "Roblox", Category: "gaming", Tier: 3, Enabled: true,
		URLTemplate: "https://www.roblox.com/user.aspx?username={username}",
		Method:      core.MethodContent,
	},
	{
		ID: "tumblr", Name: "Tumblr", Category: "social", Tier: 3, Enabled: true,
		URLTemplate: "https://{username}.tumblr.com",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"there's nothing here",
			"whatever you were looking for doesn't currently exist",
		},
	},
	{
		ID: "wordpress", Name: "WordPress", Category: "writing", Tier: 3, Enabled: true,
		URLTemplate: "https://{username}.wordpress.com",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"doesn't exist",
		},
	},
	{
		ID: "aboutme", Name: "About.me", Category: "personal", Tier: 3, Enabled: true,
		URLTemplate: "https://about.me/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "linktree", Name: "Linktree", Category: "personal", Tier: 3, Enabled: true,
		URLTemplate: "https://linktr.ee/{username}",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"the page you're looking for doesn't exist",
		},
	},
	{
		ID: "cashapp", Name: "Cash App", Category: "finance", Tier: 3, Enabled: true,
		URLTemplate: "https://cash.app/${username}",
		Method:      core.MethodContent,
	},
	{
		ID: "duolingo", Name: "Duolingo", Category: "education", Tier: 3, Enabled: true,
		URLTemplate: "https://www.duolingo.com/profile/{username}",
		Method:      core.MethodContent,
	},
	{
		ID: "mastodon", Name: "Mastodon (mastodon.social)", Category: "social", Tier: 3, Enabled: true,
		URLTemplate: "https://mastodon.social/@{username}",
		Method:      core.MethodContent,
		NotFoundFragments: []string{
			"the page you are looking for isn't here",
		},
	},
}

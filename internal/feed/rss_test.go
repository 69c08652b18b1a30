package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Startup Funding News</title>
    <item>
      <title>Anthropic raises $450M Series C</title>
      <link>https://example.com/anthropic-series-c</link>
      <description>Anthropic announced it has raised $450 million in Series C funding led by Spark Capital.</description>
      <pubDate>Mon, 09 Feb 2026 12:00:00 +0000</pubDate>
      <category>AI</category>
      <category>Funding</category>
    </item>
    <item>
      <title>Figure closes $675M round</title>
      <link>https://example.com/figure-round</link>
      <description>Figure closed a $675 million round at a $2.6 billion valuation.</description>
      <pubDate>Tue, 10 Feb 2026 09:30:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>AI Events Calendar</title>
  <entry>
    <title>AI Engineering Summit</title>
    <link rel="alternate" href="https://example.com/ai-summit"/>
    <summary>Two-day conference on production AI systems in San Francisco.</summary>
    <published>2026-03-02T00:00:00Z</published>
    <category term="Conference"/>
  </entry>
  <entry>
    <title>LLM Hackathon</title>
    <link href="https://example.com/llm-hackathon"/>
    <content>Weekend hackathon for LLM applications.</content>
    <updated>2026-03-14T00:00:00Z</updated>
  </entry>
</feed>`

func TestParseFeed_RSS(t *testing.T) {
	feed, err := ParseFeed([]byte(rssFixture))
	require.NoError(t, err)

	assert.Equal(t, "Startup Funding News", feed.Title)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "Anthropic raises $450M Series C", first.Title)
	assert.Equal(t, "https://example.com/anthropic-series-c", first.Link)
	assert.Contains(t, first.Description, "$450 million")
	assert.Equal(t, "Mon, 09 Feb 2026 12:00:00 +0000", first.Published)
	assert.Equal(t, []string{"AI", "Funding"}, first.Categories)
}

func TestParseFeed_Atom(t *testing.T) {
	feed, err := ParseFeed([]byte(atomFixture))
	require.NoError(t, err)

	assert.Equal(t, "AI Events Calendar", feed.Title)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "AI Engineering Summit", first.Title)
	assert.Equal(t, "https://example.com/ai-summit", first.Link)
	assert.Equal(t, "2026-03-02T00:00:00Z", first.Published)
	assert.Equal(t, []string{"Conference"}, first.Categories)

	// Falls back to content and updated when summary/published absent
	second := feed.Items[1]
	assert.Contains(t, second.Description, "hackathon")
	assert.Equal(t, "2026-03-14T00:00:00Z", second.Published)
}

func TestParseFeed_Malformed(t *testing.T) {
	_, err := ParseFeed([]byte("<rss><channel><item></rss>"))
	assert.Error(t, err)
}

package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Item is one entry of a syndication feed, normalized across RSS 2.0 and Atom.
type Item struct {
	Title       string
	Link        string
	Description string
	Published   string // raw date text, parsed downstream
	Categories  []string
}

// Feed is a parsed syndication feed.
type Feed struct {
	Title string
	Items []Item
}

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title       string   `xml:"title"`
			Link        string   `xml:"link"`
			Description string   `xml:"description"`
			PubDate     string   `xml:"pubDate"`
			Categories  []string `xml:"category"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDocument struct {
	XMLName xml.Name `xml:"feed"`
	Title   string   `xml:"title"`
	Entries []struct {
		Title   string `xml:"title"`
		Links   []struct {
			Href string `xml:"href,attr"`
			Rel  string `xml:"rel,attr"`
		} `xml:"link"`
		Summary    string `xml:"summary"`
		Content    string `xml:"content"`
		Updated    string `xml:"updated"`
		Published  string `xml:"published"`
		Categories []struct {
			Term string `xml:"term,attr"`
		} `xml:"category"`
	} `xml:"entry"`
}

// ParseFeed parses RSS 2.0 or Atom content into a normalized Feed.
func ParseFeed(data []byte) (*Feed, error) {
	if bytes.Contains(data[:min(len(data), 512)], []byte("<feed")) {
		return parseAtom(data)
	}
	return parseRSS(data)
}

func parseRSS(data []byte) (*Feed, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	feed := &Feed{Title: doc.Channel.Title}
	for _, it := range doc.Channel.Items {
		feed.Items = append(feed.Items, Item{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Published:   it.PubDate,
			Categories:  it.Categories,
		})
	}
	return feed, nil
}

func parseAtom(data []byte) (*Feed, error) {
	var doc atomDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse atom: %w", err)
	}

	feed := &Feed{Title: doc.Title}
	for _, e := range doc.Entries {
		item := Item{Title: e.Title}

		for _, l := range e.Links {
			if l.Rel == "" || l.Rel == "alternate" {
				item.Link = l.Href
				break
			}
		}

		item.Description = e.Summary
		if item.Description == "" {
			item.Description = e.Content
		}

		item.Published = e.Published
		if item.Published == "" {
			item.Published = e.Updated
		}

		for _, c := range e.Categories {
			if c.Term != "" {
				item.Categories = append(item.Categories, c.Term)
			}
		}

		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}

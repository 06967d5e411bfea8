package checkout

import (
	"strings"
)

// Links are the two addressing schemes of the messaging application.
type Links struct {
	Deep string
	Web  string
}

func NewLinks(recipient, text string) Links {
	to := encodeURIComponent(recipient)
	body := encodeURIComponent(text)

	return Links{
		Deep: "tg://resolve?domain=" + to + "&text=" + body,
		Web:  "https://t.me/" + to + "?text=" + body,
	}
}

const upperhex = "0123456789ABCDEF"

// encodeURIComponent escapes like the browser function of the same name:
// spaces become %20 and !'()* stay literal.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepLiteral(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}

	return b.String()
}

func keepLiteral(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}

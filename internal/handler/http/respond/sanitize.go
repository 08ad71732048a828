package respond

import (
	"regexp"
)

var (
	// Authorization ヘッダー値
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)

	// クエリ文字列中のトークン・キー
	queryTokenPattern = regexp.MustCompile(`(?i)([?&](?:token|api_key|apikey|key|secret)=)[^&\s"]+`)

	// URL に埋め込まれた認証情報
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = queryTokenPattern.ReplaceAllString(msg, "${1}****")
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}

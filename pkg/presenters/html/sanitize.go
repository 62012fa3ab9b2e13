package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// noticeSanitizer strips everything except inline emphasis. Text content is
// escaped by the policy, so its output is safe to embed verbatim.
func noticeSanitizer() *bluemonday.Policy {
	noticePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "b", "i", "br")
		noticePolicy = policy
	})
	return noticePolicy
}

func sanitizeMessage(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

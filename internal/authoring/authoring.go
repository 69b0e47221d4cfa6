// Package authoring decides the author string recorded on posts and comments.
package authoring

import "github.com/mindmosaic/backend/internal/models"

// AnonymousAuthor is the literal recorded when the caller opts out of attribution.
const AnonymousAuthor = "Anonymous"

// ResolveAuthor derives the recorded author from the request identity and the
// anonymity flag. Both authoring endpoints go through here so the two can
// never diverge. The result is a point-in-time snapshot, never a user reference.
func ResolveAuthor(identity models.Identity, isAnonymous bool) string {
	if isAnonymous {
		return AnonymousAuthor
	}
	return identity.Username
}

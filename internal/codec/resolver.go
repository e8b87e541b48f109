package codec

import "boards/internal/domain"

// idResolver maps between session-local item ids and externally meaningful
// resource ids for the duration of one encode or decode pass. It is built
// fresh per pass and discarded afterwards.
//
// Both lookups fall back to returning the queried id unchanged when nothing
// matches. On decode this means a connection whose endpoint item failed to
// decode becomes a self-referential stub instead of being dropped; callers
// may filter those, the codec never deletes user-authored relationships
// silently.
type idResolver struct {
	resourceBySession map[string]string
	sessionByResource map[string]string
}

func newResolver() *idResolver {
	return &idResolver{
		resourceBySession: make(map[string]string),
		sessionByResource: make(map[string]string),
	}
}

// resolverForEncode seeds a resolver with every item of the board being
// encoded.
func resolverForEncode(items []domain.BoardItem) *idResolver {
	r := newResolver()
	for _, it := range items {
		r.register(it.ID, it.ResourceID)
	}
	return r
}

// register records one item. The first registration wins when two items share
// a resource id, keeping decode deterministic.
func (r *idResolver) register(sessionID, resourceID string) {
	if _, ok := r.resourceBySession[sessionID]; !ok {
		r.resourceBySession[sessionID] = resourceID
	}
	if _, ok := r.sessionByResource[resourceID]; !ok {
		r.sessionByResource[resourceID] = sessionID
	}
}

// toResourceID resolves a session id to its resource id, falling back to the
// session id unchanged.
func (r *idResolver) toResourceID(sessionID string) string {
	if res, ok := r.resourceBySession[sessionID]; ok {
		return res
	}
	return sessionID
}

// toSessionID resolves a resource id to a session id, falling back to the
// resource id unchanged.
func (r *idResolver) toSessionID(resourceID string) string {
	if s, ok := r.sessionByResource[resourceID]; ok {
		return s
	}
	return resourceID
}

// knows reports whether sessionID belongs to a registered item.
func (r *idResolver) knows(sessionID string) bool {
	_, ok := r.resourceBySession[sessionID]
	return ok
}

// knowsResource reports whether resourceID belongs to a registered item.
func (r *idResolver) knowsResource(resourceID string) bool {
	_, ok := r.sessionByResource[resourceID]
	return ok
}

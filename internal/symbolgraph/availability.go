package symbolgraph

// AvailabilityItem records a symbol's availability on one platform domain:
// when it was introduced, deprecated, or obsoleted, plus unconditional
// deprecation/unavailability flags and optional migration hints.
//
// Items are created from source annotations during decoding, or synthesized
// from bundle-level defaults and fallback-platform inheritance by the loader.
// Once attached to a unified symbol's mixins they are not mutated again.
type AvailabilityItem struct {
	Domain                       string           `json:"domain,omitempty"`
	Introduced                   *SemanticVersion `json:"introduced,omitempty"`
	Deprecated                   *SemanticVersion `json:"deprecated,omitempty"`
	Obsoleted                    *SemanticVersion `json:"obsoleted,omitempty"`
	Message                      string           `json:"message,omitempty"`
	Renamed                      string           `json:"renamed,omitempty"`
	IsUnconditionallyDeprecated  bool             `json:"isUnconditionallyDeprecated,omitempty"`
	IsUnconditionallyUnavailable bool             `json:"isUnconditionallyUnavailable,omitempty"`
}

// ForDomain copies the item, retagged with another platform domain. Used by
// the fallback-platform pass to inherit an entire record (including
// deprecation and obsoletion) under the inheriting platform's name.
func (a AvailabilityItem) ForDomain(domain string) AvailabilityItem {
	out := a
	out.Domain = domain
	if a.Introduced != nil {
		v := *a.Introduced
		out.Introduced = &v
	}
	if a.Deprecated != nil {
		v := *a.Deprecated
		out.Deprecated = &v
	}
	if a.Obsoleted != nil {
		v := *a.Obsoleted
		out.Obsoleted = &v
	}
	return out
}

// Availability is the availability mixin: one item per platform domain.
type Availability []AvailabilityItem

// MixinKind implements Mixin.
func (Availability) MixinKind() MixinKind { return MixinKindAvailability }

// ForDomain returns the item for the given platform domain, if present.
func (av Availability) ForDomain(domain string) (AvailabilityItem, bool) {
	for _, item := range av {
		if item.Domain == domain {
			return item, true
		}
	}
	return AvailabilityItem{}, false
}

// HasDomain reports whether any item names the given platform domain.
func (av Availability) HasDomain(domain string) bool {
	_, ok := av.ForDomain(domain)
	return ok
}

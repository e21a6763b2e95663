package suggest

import (
	"strings"

	"github.com/campushare/relevance/internal/models"
)

// interestProfile is the implicit interest set derived from a user's own
// uploads plus their declared profile fields. All values are lowercased.
type interestProfile struct {
	subjects map[string]struct{}
	topics   map[string]struct{}
	class    string
	student  bool
}

// buildInterestProfile derives the interest set for a user.
func buildInterestProfile(profile *models.UserProfile) *interestProfile {
	ip := &interestProfile{
		subjects: make(map[string]struct{}),
		topics:   make(map[string]struct{}),
		class:    strings.ToLower(profile.Class),
		student:  strings.EqualFold(profile.UserType, "student"),
	}
	if profile.Subject != "" {
		ip.subjects[strings.ToLower(profile.Subject)] = struct{}{}
	}
	for _, doc := range profile.OwnUploads {
		if doc.Labels.Subject != "" {
			ip.subjects[strings.ToLower(doc.Labels.Subject)] = struct{}{}
		}
		if doc.Labels.Topic != "" {
			ip.topics[strings.ToLower(doc.Labels.Topic)] = struct{}{}
		}
	}
	return ip
}

func (ip *interestProfile) matchesSubject(subject string) bool {
	_, ok := ip.subjects[strings.ToLower(subject)]
	return ok && subject != ""
}

func (ip *interestProfile) matchesTopic(topic string) bool {
	_, ok := ip.topics[strings.ToLower(topic)]
	return ok && topic != ""
}

func (ip *interestProfile) matchesClass(class string) bool {
	return ip.class != "" && strings.EqualFold(class, ip.class)
}

// fromEducator reports whether the document was uploaded by a verified
// educator and the requesting user is a student.
func (ip *interestProfile) fromEducator(uploaderType string) bool {
	if !ip.student {
		return false
	}
	return strings.EqualFold(uploaderType, "teacher") || strings.EqualFold(uploaderType, "college")
}

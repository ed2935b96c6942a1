package recommend

import "strings"

// Substring keywords routed to guide pages, checked in order. A query can
// hit several rows but each row contributes at most one page.
var keywordPages = []struct {
	keywords []string
	page     string
}{
	{[]string{"rain"}, PageRainy},
	{[]string{"sun", "bright"}, PageSunny},
	{[]string{"wind"}, PageWindy},
	{[]string{"cloud"}, PageCloudy},
	{[]string{"cold", "chill"}, PageCold},
	{[]string{"hot", "warm"}, PageHot},
	{[]string{"mild"}, PageMild},
}

// FallbackMessage is returned when no keyword matches the query.
const FallbackMessage = "We can't search for what you ask for. Try some clearer keyword: warm, hot, cold, chill, rain, wind, sun, bright, cloud, mild..."

// ChatReply is the assistant's answer to one query.
type ChatReply struct {
	Pages     []string `json:"pages"`
	Message   string   `json:"message"`
	ExpertOK  bool     `json:"expert_available"`
	ExpertMsg string   `json:"expert_message"`
}

// Chat matches the query against the keyword table, case-insensitively,
// and returns every guide page it hits in table order. loggedIn gates the
// expert handoff offer.
func Chat(query string, loggedIn bool) ChatReply {
	q := strings.ToLower(query)

	var pages []string
	for _, kp := range keywordPages {
		for _, kw := range kp.keywords {
			if strings.Contains(q, kw) {
				pages = append(pages, kp.page)
				break
			}
		}
	}

	if len(pages) == 0 {
		return ChatReply{Message: FallbackMessage}
	}

	reply := ChatReply{
		Pages:    pages,
		Message:  "Here's what we found for you.",
		ExpertOK: loggedIn,
	}
	if loggedIn {
		reply.ExpertMsg = "Chat with an expert is available."
	} else {
		reply.ExpertMsg = "Please log in to chat with experts."
	}
	return reply
}

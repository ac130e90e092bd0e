package catalog

import (
	"time"

	"github.com/abhisek/circlet/internal/usertype"
)

// productionFlows returns the six built-in flows, one per user type.
func productionFlows() []Flow {
	return []Flow{
		entrepreneurFlow(),
		studentFlow(),
		studentEntrepreneurFlow(),
		mentorFlow(),
		communityBuilderFlow(),
		investorFlow(),
	}
}

func entrepreneurFlow() Flow {
	return Flow{
		ID:                "entrepreneur-tour",
		UserType:          usertype.Entrepreneur,
		Title:             "Build your venture here",
		Description:       "Find co-founders, mentors and early customers.",
		EstimatedDuration: 180 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome, founder",
				Description:           "Your dashboard tracks everything your venture needs.",
				Message:               "This is your home base. Tasks, intros and circle activity land here first.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:                    "founder-profile",
				Title:                 "Tell your story",
				Description:           "A complete profile gets three times more intro requests.",
				Message:               "Add your venture, its stage and what you're looking for so the right people find you.",
				NavigationDestination: RouteProfile,
				TooltipAlignment:      AlignRight,
			},
			Step{
				ID:               "post-update",
				Title:            "Share progress",
				Description:      "Post milestones to keep your supporters in the loop.",
				Message:          "Short updates about launches, hires or lessons learned build trust with investors and peers.",
				TooltipAlignment: AlignTop,
			},
			Step{
				ID:                    "founder-circles",
				Title:                 "Join founder circles",
				Description:           "Circles are small groups organized around a stage or industry.",
				Message:               "Pick a circle for your industry and one for your stage. Members share deals, tools and warm intros.",
				NavigationDestination: RouteCircles,
				TooltipAlignment:      AlignLeft,
			},
			visitNetworkStep("Open your Network now. Suggested co-founders and mentors are ranked by shared interests."),
			Step{
				ID:               "request-intro",
				Title:            "Ask for an intro",
				Description:      "Warm introductions convert far better than cold messages.",
				Message:          "From any profile, request an introduction through a mutual connection.",
				TooltipAlignment: AlignBottom,
			},
			Step{
				ID:                    "pitch-chat",
				Title:                 "Pitch in chat",
				Description:           "Keep investor and customer conversations in one place.",
				Message:               "Chat threads keep decks, notes and follow-ups together so nothing slips.",
				NavigationDestination: RouteChat,
				TooltipAlignment:      AlignRight,
			},
		),
	}
}

func studentFlow() Flow {
	return Flow{
		ID:                "student-tour",
		UserType:          usertype.Student,
		Title:             "Learn with the community",
		Description:       "Meet peers, find mentors and discover opportunities.",
		EstimatedDuration: 150 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome, student",
				Description:           "Your dashboard collects classes, events and opportunities.",
				Message:               "Everything relevant to your studies and career shows up here.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:               "student-profile",
				Title:            "Set up your profile",
				Description:      "List your school, field and what you want to learn.",
				Message:          "Mentors search by field of study, so be specific about your interests.",
				TooltipAlignment: AlignRight,
			},
			Step{
				ID:                    "study-circles",
				Title:                 "Find study circles",
				Description:           "Join circles for your course or campus.",
				Message:               "Study circles share notes, plan sessions and help each other before exams.",
				NavigationDestination: RouteCircles,
				TooltipAlignment:      AlignLeft,
			},
			Step{
				ID:                    "explore-feed",
				Title:                 "Explore the feed",
				Description:           "Internships, scholarships and events are posted daily.",
				Message:               "Save posts you like and we'll suggest similar opportunities.",
				NavigationDestination: RouteFeed,
				TooltipAlignment:      AlignTop,
			},
			visitNetworkStep("Open your Network to find classmates and mentors who studied what you're studying."),
			Step{
				ID:               "ask-mentor",
				Title:            "Ask a mentor",
				Description:      "Mentors volunteer time to answer questions.",
				Message:          "Send a short, specific question. Mentors reply faster when they know exactly how to help.",
				TooltipAlignment: AlignBottom,
			},
			Step{
				ID:                    "discover-events",
				Title:                 "Discover events",
				Description:           "Workshops and meetups near you.",
				Message:               "Events are a great way to turn online connections into real friendships.",
				NavigationDestination: RouteDiscover,
				TooltipAlignment:      AlignRight,
			},
		),
	}
}

func studentEntrepreneurFlow() Flow {
	return Flow{
		ID:                "student-entrepreneur-tour",
		UserType:          usertype.StudentEntrepreneur,
		Title:             "Build while you learn",
		Description:       "Balance your studies with your first venture.",
		EstimatedDuration: 180 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome, student founder",
				Description:           "Your dashboard splits study and venture activity.",
				Message:               "Keep an eye on both columns. We'll surface campus resources for founders too.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:                    "dual-profile",
				Title:                 "Show both sides",
				Description:           "Add your school and your venture to your profile.",
				Message:               "Many investors and mentors look specifically for student founders.",
				NavigationDestination: RouteProfile,
				TooltipAlignment:      AlignRight,
			},
			Step{
				ID:               "campus-circles",
				Title:            "Campus founder circles",
				Description:      "Circles for student founders on your campus.",
				Message:          "Share resources, find teammates among classmates and trade notes on accelerators.",
				TooltipAlignment: AlignLeft,
			},
			Step{
				ID:               "find-teammates",
				Title:            "Find teammates",
				Description:      "Recruit classmates with complementary skills.",
				Message:          "Post a role in your circle describing the skills you need and the time commitment.",
				TooltipAlignment: AlignTop,
			},
			visitNetworkStep("Open your Network to see student founders and alumni mentors near you."),
			Step{
				ID:                    "competitions",
				Title:                 "Pitch competitions",
				Description:           "Student competitions are posted to the feed.",
				Message:               "Competitions are a low-risk way to get feedback, prizes and visibility.",
				NavigationDestination: RouteFeed,
				TooltipAlignment:      AlignTop,
			},
			Step{
				ID:                    "mentor-chat",
				Title:                 "Chat with mentors",
				Description:           "Keep mentor conversations organized.",
				Message:               "Use chat to schedule office hours and share progress between sessions.",
				NavigationDestination: RouteChat,
				TooltipAlignment:      AlignRight,
			},
		),
	}
}

func mentorFlow() Flow {
	return Flow{
		ID:                "mentor-tour",
		UserType:          usertype.Mentor,
		Title:             "Share what you know",
		Description:       "Guide founders and students who need your experience.",
		EstimatedDuration: 120 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome, mentor",
				Description:           "Your dashboard shows requests waiting for you.",
				Message:               "Mentee requests and upcoming sessions appear at the top.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:                    "expertise",
				Title:                 "List your expertise",
				Description:           "Topics and industries you can help with.",
				Message:               "Mentees are matched to you by these topics, so keep them focused.",
				NavigationDestination: RouteProfile,
				TooltipAlignment:      AlignRight,
			},
			Step{
				ID:               "availability",
				Title:            "Set your availability",
				Description:      "Decide how many sessions you can offer each month.",
				Message:          "You control your time. We never send more requests than your limit.",
				TooltipAlignment: AlignLeft,
			},
			visitNetworkStep("Open your Network to see members who asked for help in your areas."),
			Step{
				ID:                    "host-circle",
				Title:                 "Host a circle",
				Description:           "Run a small group around your specialty.",
				Message:               "Circles let you help many people at once and build a following.",
				NavigationDestination: RouteCircles,
				TooltipAlignment:      AlignTop,
			},
			Step{
				ID:               "share-knowledge",
				Title:            "Post a lesson",
				Description:      "Short lessons on the feed reach the whole community.",
				Message:          "A quick write-up of a mistake you made often helps more people than a long guide.",
				TooltipAlignment: AlignBottom,
			},
		),
	}
}

func communityBuilderFlow() Flow {
	return Flow{
		ID:                "community-builder-tour",
		UserType:          usertype.CommunityBuilder,
		Title:             "Grow the community",
		Description:       "Connect people, host conversations and spark collaboration.",
		EstimatedDuration: 150 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome aboard",
				Description:           "Your dashboard shows what's happening across the community.",
				Message:               "Trending circles, new members and upcoming events all start here.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:                    "browse-feed",
				Title:                 "Browse the feed",
				Description:           "See what members are sharing.",
				Message:               "React and comment to welcome new voices. Small gestures keep the community warm.",
				NavigationDestination: RouteFeed,
				TooltipAlignment:      AlignTop,
			},
			Step{
				ID:                    "join-circles",
				Title:                 "Join circles",
				Description:           "Circles are where most conversations happen.",
				Message:               "Join a few circles that match your interests. You can leave any time.",
				NavigationDestination: RouteCircles,
				TooltipAlignment:      AlignLeft,
			},
			Step{
				ID:               "start-circle",
				Title:            "Start your own circle",
				Description:      "Bring people together around something you care about.",
				Message:          "Give your circle a clear purpose and invite five people to get it going.",
				TooltipAlignment: AlignRight,
			},
			visitNetworkStep("Open your Network and welcome someone who joined this week."),
			Step{
				ID:               "host-event",
				Title:            "Host an event",
				Description:      "Meetups and online sessions bring circles to life.",
				Message:          "Events appear in Discover for everyone nearby.",
				TooltipAlignment: AlignBottom,
			},
			Step{
				ID:                    "group-chat",
				Title:                 "Keep the conversation going",
				Description:           "Group chats for every circle.",
				Message:               "Use chat for quick coordination and save long discussions for the feed.",
				NavigationDestination: RouteChat,
				TooltipAlignment:      AlignRight,
			},
		),
	}
}

func investorFlow() Flow {
	return Flow{
		ID:                "investor-tour",
		UserType:          usertype.Investor,
		Title:             "Find your next deal",
		Description:       "Discover ventures and meet founders early.",
		EstimatedDuration: 120 * time.Second,
		IsRequired:        true,
		Steps: withTail(
			Step{
				ID:                    "welcome",
				Title:                 "Welcome, investor",
				Description:           "Your dashboard highlights ventures that fit your thesis.",
				Message:               "Matches update as founders post milestones.",
				NavigationDestination: RouteDashboard,
				TooltipAlignment:      AlignCenter,
			},
			Step{
				ID:                    "thesis",
				Title:                 "Describe your thesis",
				Description:           "Stage, check size and sectors.",
				Message:               "Founders only see a summary. The details power your deal matching.",
				NavigationDestination: RouteProfile,
				TooltipAlignment:      AlignRight,
			},
			Step{
				ID:                    "deal-flow",
				Title:                 "Explore deal flow",
				Description:           "Ventures open to investment are listed in Discover.",
				Message:               "Filter by stage and sector, then save ventures to your watchlist.",
				NavigationDestination: RouteDiscover,
				TooltipAlignment:      AlignTop,
			},
			visitNetworkStep("Open your Network to see founders and co-investors connected to you."),
			Step{
				ID:               "investor-circles",
				Title:            "Syndicate circles",
				Description:      "Co-invest with people you trust.",
				Message:          "Syndicate circles share diligence notes and split allocations.",
				TooltipAlignment: AlignLeft,
			},
			Step{
				ID:               "office-hours",
				Title:            "Offer office hours",
				Description:      "Meet founders before they raise.",
				Message:          "Open a few slots each month. It's the easiest way to see great companies early.",
				TooltipAlignment: AlignBottom,
			},
		),
	}
}

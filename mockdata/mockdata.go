// Package mockdata generates synthetic disaster posts for demos and for
// working without platform credentials.
package mockdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"disasterwatch/keywords"
	"disasterwatch/models"
)

var usernames = []string{
	"DisasterAlert", "WeatherWatcher", "StormChaser", "EmergencyInfo", "SafetyFirst",
	"CrisisResponse", "WeatherChannel", "DisasterRelief", "EmergencyUpdate", "NewsFeed",
	"WeatherUpdates", "StormTracker", "DisasterMonitor", "EmergencyServices", "FirstResponder",
	"ReliefWorker", "WeatherForecast", "DisasterRecovery", "EmergencyNotice", "SafetyTips",
}

type place struct {
	name string
	lat  float64
	lon  float64
}

var places = []place{
	{"Mumbai, Maharashtra", 19.0760, 72.8777},
	{"Delhi, NCR", 28.6139, 77.2090},
	{"Bangalore, Karnataka", 12.9716, 77.5946},
	{"Chennai, Tamil Nadu", 13.0827, 80.2707},
	{"Kolkata, West Bengal", 22.5726, 88.3639},
	{"Hyderabad, Telangana", 17.3850, 78.4867},
	{"Pune, Maharashtra", 18.5204, 73.8567},
	{"Ahmedabad, Gujarat", 23.0225, 72.5714},
	{"Jaipur, Rajasthan", 26.9124, 75.7873},
	{"Patna, Bihar", 25.5941, 85.1376},
	{"Bhopal, Madhya Pradesh", 23.2599, 77.4126},
	{"Visakhapatnam, Andhra Pradesh", 17.6868, 83.2185},
	{"Kochi, Kerala", 9.9312, 76.2673},
	{"Bhubaneswar, Odisha", 20.2961, 85.8245},
	{"Guwahati, Assam", 26.1445, 91.7362},
}

var templates = []string{
	"Breaking: %s reported near %s. Stay safe everyone.",
	"%s update: authorities monitoring the situation in %s.",
	"Severe %s hits %s, rescue teams deployed.",
	"Warning issued for %s in the %s region.",
	"%s situation in %s improving, relief work underway.",
}

// Generator produces synthetic posts. The clock fixes "now" so output is
// reproducible under a fake clock and a fixed seed.
type Generator struct {
	rng   *rand.Rand
	clock clockwork.Clock
}

// NewGenerator builds a generator from a seed. Pass nil to use the real
// clock.
func NewGenerator(seed int64, clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		clock: clock,
	}
}

// Posts generates n synthetic posts for a disaster category, timestamps
// spread over the trailing 24 hours, newest first.
func (g *Generator) Posts(category string, n int) []models.Post {
	kws := keywords.ForCategory(category)
	now := g.clock.Now().UTC()

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		kw := kws[g.rng.Intn(len(kws))]
		spot := places[g.rng.Intn(len(places))]
		user := usernames[g.rng.Intn(len(usernames))]

		post := models.Post{
			Id:           fmt.Sprintf("mock-%d-%d", now.Unix(), i),
			Text:         fmt.Sprintf(templates[g.rng.Intn(len(templates))], kw, spot.name),
			CreatedAt:    now.Add(-time.Duration(g.rng.Intn(24*60)) * time.Minute),
			ReplyCount:   g.rng.Intn(50),
			RetweetCount: g.rng.Intn(200),
			LikeCount:    g.rng.Intn(500),
			Author: &models.Author{
				Id:       fmt.Sprintf("mock-user-%d", g.rng.Intn(1000)),
				Name:     user,
				Username: user,
				Location: spot.name,
			},
		}

		// Roughly a third of mock posts carry coordinates
		if g.rng.Intn(3) == 0 {
			post.Geo = &models.Geo{Coordinates: []float64{spot.lon, spot.lat}}
		}

		posts = append(posts, post)
	}

	return posts
}

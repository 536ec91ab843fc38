package seeder

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// History is how far back generated timestamps reach.
const History = 2 * 365 * 24 * time.Hour

var (
	DeploymentStatuses = []string{"SUCCESS", "FAILURE", "PENDING"}
	LogSeverities      = []string{"INFO", "WARNING", "ERROR"}
	Permissions        = []string{"READ", "write", "admin", "execute", "read-write"}
)

// DataGenerator is the only source of randomness in a seeding run.
type DataGenerator struct {
	faker        *gofakeit.Faker
	title        cases.Caser
	now          time.Time
	uniqueTries  int
	uniqueEmails map[string]struct{}
}

// NewDataGenerator seeds the generator; seed 0 picks a random seed.
func NewDataGenerator(seed uint64) *DataGenerator {
	return &DataGenerator{
		faker:        gofakeit.New(seed),
		title:        cases.Title(language.English),
		now:          time.Now().UTC(),
		uniqueTries:  1000,
		uniqueEmails: make(map[string]struct{}),
	}
}

// Now pins the upper end of the timestamp window.
func (g *DataGenerator) Now(now time.Time) {
	g.now = now.UTC()
}

// ForeignKey draws a key uniformly from [1, n]. Keys are assumed to be
// assigned contiguously by the store.
func (g *DataGenerator) ForeignKey(n int) int {
	return g.faker.Number(1, n)
}

func (g *DataGenerator) Name() string {
	return g.faker.Name()
}

// UniqueEmail never returns the same address twice for this generator.
func (g *DataGenerator) UniqueEmail() (string, error) {
	for i := 0; i < g.uniqueTries; i++ {
		email := strings.ToLower(g.faker.Email())
		if _, seen := g.uniqueEmails[email]; seen {
			continue
		}
		g.uniqueEmails[email] = struct{}{}
		return email, nil
	}
	return "", fmt.Errorf("%w: email after %d attempts", ErrUniqueExhausted, g.uniqueTries)
}

func (g *DataGenerator) JobTitle() string {
	return g.faker.JobTitle()
}

// CategoryName looks like "Monitoring Tools".
func (g *DataGenerator) CategoryName() string {
	return g.title.String(g.faker.Word()) + " Tools"
}

func (g *DataGenerator) FileName(extension string) string {
	return strings.ToLower(g.faker.Word()) + "." + extension
}

// ContentHash is a 40 character hex SHA-1.
func (g *DataGenerator) ContentHash() string {
	sum := sha1.Sum([]byte(g.faker.UUID()))
	return hex.EncodeToString(sum[:])
}

// DomainWord is a single word suitable for a host name label.
func (g *DataGenerator) DomainWord() string {
	domain := g.faker.DomainName()
	if idx := strings.IndexByte(domain, '.'); idx > 0 {
		domain = domain[:idx]
	}
	return strings.ToLower(domain)
}

// Phrase is a short buzzword phrase used for pipeline and step names.
func (g *DataGenerator) Phrase() string {
	return g.faker.BS() + " " + g.faker.BuzzWord()
}

// Version formats "major.minor" with major in [1, maxMajor] and minor in [0, 9].
func (g *DataGenerator) Version(maxMajor int) string {
	return fmt.Sprintf("%d.%d", g.faker.Number(1, maxMajor), g.faker.Number(0, 9))
}

// Timestamp falls within the last two years, truncated to the second.
func (g *DataGenerator) Timestamp() time.Time {
	return g.faker.DateRange(g.now.Add(-History), g.now).UTC().Truncate(time.Second)
}

func (g *DataGenerator) Pick(values []string) string {
	return g.faker.RandomString(values)
}

func (g *DataGenerator) Active() bool {
	return g.faker.Bool()
}

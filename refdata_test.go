package refdata

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type RefdataSuite struct {
	index *CityIndex
}

var _ = Suite(&RefdataSuite{})

func (s *RefdataSuite) SetUpSuite(c *C) {
	s.index = NewIndiaCityIndex()
}

func (s *RefdataSuite) TestPathConstants(c *C) {
	for name, v := range pathConstants() {
		c.Assert(v, Not(Equals), "", Commentf("%s is empty", name))
	}
	c.Assert(INatDatasetKey, Equals, "50c9509d-22c7-4a22-a47d-8c48425ef4a7")
	c.Assert(CacheDir, Equals, "_cache")
}

func (s *RefdataSuite) TestIndiaRow(c *C) {
	in, ok := LookupCountry("IN")
	c.Assert(ok, Equals, true)
	c.Assert(in.Name, Equals, "India")
	c.Assert(in.PopulationM, Equals, 1428.6)
	c.Assert(in.AreaMkm2, Equals, 3.287)
	c.Assert(in.EstPlantSpecies, Equals, int64(18000))
}

func (s *RefdataSuite) TestMumbaiRow(c *C) {
	m, ok := LookupCity("Mumbai")
	c.Assert(ok, Equals, true)
	c.Assert(m.Lat, Equals, 19.08)
	c.Assert(m.Lon, Equals, 72.88)
}

func (s *RefdataSuite) TestTableSizes(c *C) {
	c.Assert(CountryRefs(), HasLen, expectedCountryCount)
	c.Assert(IndiaCities(), HasLen, expectedCityCount)
	c.Assert(s.index.Len(), Equals, expectedCityCount)
}

func (s *RefdataSuite) TestValidate(c *C) {
	c.Assert(Validate(), IsNil)
}

func (s *RefdataSuite) TestNearest(c *C) {
	city, dist, err := s.index.Nearest(19.2, 72.9)
	c.Assert(err, IsNil)
	c.Assert(city.Name, Equals, "Mumbai")
	c.Assert(dist < 20, Equals, true)

	city, _, err = s.index.Nearest(28.7, 77.1)
	c.Assert(err, IsNil)
	c.Assert(city.Name, Equals, "Delhi")
}

func (s *RefdataSuite) TestCopiesAreIndependent(c *C) {
	cities := IndiaCities()
	cities[0].Name = "Bombay"
	c.Assert(IndiaCities()[0].Name, Equals, "Mumbai")

	refs := CountryRefs()
	refs[0].Code = "XX"
	c.Assert(CountryCodes()[0], Equals, "FR")
}

func BenchmarkNearest(b *testing.B) {
	idx := NewIndiaCityIndex()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		idx.Nearest(21.15, 79.09)
	}
}

func BenchmarkFindCountry(b *testing.B) {
	for n := 0; n < b.N; n++ {
		FindCountry("Swtzerland", 2)
	}
}

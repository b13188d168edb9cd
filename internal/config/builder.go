package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names resolve without a system zoneinfo

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

// Location resolves TimeZone. An empty zone yields nil, which keeps
// timestamps without a zone.
func (p *Profile) Location() (*time.Location, error) {
	if p.TimeZone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", p.TimeZone, err)
	}
	return loc, nil
}

// Builder returns a ConfigBuilder carrying the conversion policy of the
// profile. Batch size is passed through unchecked.
func (p *Profile) Builder(alloc memory.Allocator) (*sqlarrow.ConfigBuilder, error) {
	loc, err := p.Location()
	if err != nil {
		return nil, err
	}

	b := sqlarrow.NewConfigBuilderWithMetadata(alloc, loc, p.IncludeMetadata).
		SetReuseOutputContainer(p.ReuseOutputContainer).
		SetTargetBatchSize(p.TargetBatchSize).
		SetRoundingMode(p.RoundingMode)

	if m := p.ExplicitTypes.byIndex(); m != nil {
		b.SetExplicitTypesByColumnIndex(m)
	}
	if m := p.ExplicitTypes.byName(); m != nil {
		b.SetExplicitTypesByColumnName(m)
	}
	if m := p.ArraySubTypes.byIndex(); m != nil {
		b.SetArraySubTypeByColumnIndex(m)
	}
	if m := p.ArraySubTypes.byName(); m != nil {
		b.SetArraySubTypeByColumnName(m)
	}
	return b, nil
}

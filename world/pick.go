package world

import "github.com/jakecoffman/cp"

const (
	entityPickRadius = 0.5
	minZoneSpan      = 0.1
	pickSlop         = 0.05
)

// Picked is the result of a point query. At most one field is set.
type Picked struct {
	Entity *Entity
	Zone   *Zone
}

// Empty reports whether nothing was hit.
func (p Picked) Empty() bool {
	return p.Entity == nil && p.Zone == nil
}

// PickIndex answers point queries over entity and zone footprints using
// static shapes that never take part in a simulation step.
type PickIndex struct {
	entitySpace *cp.Space
	zoneSpace   *cp.Space

	shapeToEntity map[*cp.Shape]*Entity
	shapeToZone   map[*cp.Shape]*Zone
}

// NewPickIndex builds circles for entities and boxes for zone footprints.
func NewPickIndex(entities []*Entity, zones []*Zone) *PickIndex {
	p := &PickIndex{
		entitySpace:   cp.NewSpace(),
		zoneSpace:     cp.NewSpace(),
		shapeToEntity: make(map[*cp.Shape]*Entity, len(entities)),
		shapeToZone:   make(map[*cp.Shape]*Zone, len(zones)),
	}
	for _, e := range entities {
		if e == nil {
			continue
		}
		offset := cp.Vector{X: e.Location.X, Y: e.Location.Y}
		shape := cp.NewCircle(p.entitySpace.StaticBody, entityPickRadius, offset)
		p.entitySpace.AddShape(shape)
		p.shapeToEntity[shape] = e
	}
	for _, z := range zones {
		if z == nil {
			continue
		}
		ext := z.Extent()
		bb := cp.BB{
			L: z.Origin.X,
			B: z.Origin.Y,
			R: z.Origin.X + max(ext.X, minZoneSpan),
			T: z.Origin.Y + max(ext.Y, minZoneSpan),
		}
		shape := cp.NewBox2(p.zoneSpace.StaticBody, bb, 0)
		p.zoneSpace.AddShape(shape)
		p.shapeToZone[shape] = z
	}
	return p
}

// Pick returns the entity or zone under (x, y).
func (p *PickIndex) Pick(x, y float64) Picked {
	if p == nil {
		return Picked{}
	}
	point := cp.Vector{X: x, Y: y}
	if info := p.entitySpace.PointQueryNearest(point, pickSlop, cp.SHAPE_FILTER_ALL); info != nil && info.Shape != nil {
		if e, ok := p.shapeToEntity[info.Shape]; ok {
			return Picked{Entity: e}
		}
	}
	if info := p.zoneSpace.PointQueryNearest(point, pickSlop, cp.SHAPE_FILTER_ALL); info != nil && info.Shape != nil {
		if z, ok := p.shapeToZone[info.Shape]; ok {
			return Picked{Zone: z}
		}
	}
	return Picked{}
}

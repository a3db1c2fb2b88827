package world

import "github.com/milk9111/worldbuilder/levels"

// Zone is a named axis-aligned box. Zones do not occupy grid cells.
type Zone struct {
	Name   string
	Origin Vector3
	extent Vector3

	world *World
}

// NewZone creates a detached zone with every extent axis clamped to >= 0.
func NewZone(name string, origin, extent Vector3) *Zone {
	return &Zone{Name: name, Origin: origin, extent: extent.NonNegative()}
}

func (z *Zone) Extent() Vector3 { return z.extent }

// SetExtent resizes the zone, clamping each axis to >= 0.
func (z *Zone) SetExtent(v Vector3) {
	z.extent = v.NonNegative()
}

func (z *Zone) Position() Vector3 { return z.Origin }

func (z *Zone) SetPosition(v Vector3) { z.Origin = v }

// World returns the owning world, or nil if the zone is detached.
func (z *Zone) World() *World { return z.world }

// Contains reports whether p lies inside the box, bounds inclusive.
func (z *Zone) Contains(p Vector3) bool {
	far := z.Origin.Add(z.extent)
	return p.X >= z.Origin.X && p.X <= far.X &&
		p.Y >= z.Origin.Y && p.Y <= far.Y &&
		p.Z >= z.Origin.Z && p.Z <= far.Z
}

func (z *Zone) record() levels.ZoneRecord {
	return levels.ZoneRecord{
		Name: z.Name,
		Region: levels.Region{
			X:      z.Origin.X,
			Y:      z.Origin.Y,
			Z:      z.Origin.Z,
			Width:  z.extent.X,
			Height: z.extent.Y,
			Depth:  z.extent.Z,
		},
	}
}

func zoneFromRecord(r levels.ZoneRecord) *Zone {
	return NewZone(r.Name,
		Vector3{X: r.Region.X, Y: r.Region.Y, Z: r.Region.Z},
		Vector3{X: r.Region.Width, Y: r.Region.Height, Z: r.Region.Depth})
}

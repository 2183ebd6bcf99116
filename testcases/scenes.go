// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

import (
	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/shade"
)

var basicScenes = []Scene{
	{
		Name:       "quad_flat",
		Width:      128,
		Height:     96,
		Background: sky,
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(32, 32)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{0, 0, -40}},
				Color:     red,
			},
		},
	},
	{
		Name:       "quad_textured",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting:   shade.Lighting{Ambient: 1},
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(32, 32)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{0, 0, -40}},
				Texture:   checker(4, 8, white, blue),
			},
		},
	},
	{
		Name:       "quad_tilted",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting:   shade.Lighting{Ambient: 1},
		Objects: []Object{
			{
				Polygons: []geom3d.Polygon{quad(48, 32)},
				Transform: geom3d.Transform{
					Location: mgl64.Vec3{0, 0, -45},
					AngleX:   -0.5,
					AngleY:   0.9,
				},
				Texture: checker(4, 8, white, blue),
			},
		},
	},
	{
		Name:        "quad_wide_angle",
		Width:       128,
		Height:      96,
		FieldOfView: 2.2,
		Background:  sky,
		Lighting:    shade.Lighting{Ambient: 0.8},
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(64, 40)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{0, 0, -30}, AngleY: -0.7},
				Texture:   bricks(),
			},
		},
	},
}

var lightingScenes = []Scene{
	{
		Name:       "wall_linear",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				shade.NewPointLight(mgl64.Vec3{-20, 10, -35}, 1, 60),
			},
			Ambient: 0.1,
		},
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(80, 60)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{0, 0, -50}},
				Texture:   bricks(),
			},
		},
	},
	{
		Name:       "wall_inverse_square",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				{
					Position:  mgl64.Vec3{15, -10, -40},
					Intensity: 150,
					Falloff:   shade.FalloffInverseSquare,
				},
			},
			Ambient: 0.05,
		},
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(80, 60)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{0, 0, -50}},
				Texture:   bricks(),
			},
		},
	},
	{
		Name:       "floor_two_lights",
		Width:      128,
		Height:     96,
		Background: sky,
		Camera: geom3d.Transform{
			Location: mgl64.Vec3{0, 30, 100},
			AngleX:   -0.3,
		},
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				shade.NewPointLight(mgl64.Vec3{-25, 8, 10}, 1, 50),
				shade.NewPointLight(mgl64.Vec3{25, 8, -20}, 0.8, 70),
			},
			Ambient: 0.15,
		},
		Objects: []Object{
			{
				Polygons: floorTiles(4, 30),
				Texture:  checker(2, 15, white, grey),
			},
		},
	},
}

var depthScenes = []Scene{
	{
		Name:       "overlap",
		Width:      128,
		Height:     96,
		Background: sky,
		Objects: []Object{
			{
				Polygons:  []geom3d.Polygon{quad(24, 24)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{-6, 4, -30}},
				Color:     red,
			},
			{
				Polygons:  []geom3d.Polygon{quad(40, 40)},
				Transform: geom3d.Transform{Location: mgl64.Vec3{6, -4, -50}},
				Color:     blue,
			},
		},
	},
	{
		Name:       "cube",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				shade.NewPointLight(mgl64.Vec3{30, 30, 0}, 1, 120),
			},
			Ambient: 0.2,
		},
		Objects: []Object{
			{
				Polygons: cube(24),
				Transform: geom3d.Transform{
					Location: mgl64.Vec3{0, 0, -60},
					AngleX:   0.5,
					AngleY:   0.7,
				},
				Texture: bricks(),
			},
		},
	},
	{
		Name:       "pyramid_on_floor",
		Width:      128,
		Height:     96,
		Background: sky,
		Camera: geom3d.Transform{
			Location: mgl64.Vec3{0, 25, 70},
			AngleX:   -0.25,
		},
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				shade.NewPointLight(mgl64.Vec3{-30, 40, 30}, 1, 150),
			},
			Ambient: 0.25,
		},
		Objects: []Object{
			{
				Polygons: floorTiles(3, 30),
				Texture:  checker(2, 15, white, grey),
			},
			{
				Polygons:  pyramid(30, 25),
				Transform: geom3d.Transform{AngleY: 0.4},
				Texture:   gradient(32, 32, red, white),
			},
		},
	},
}

var motionScenes = []Scene{
	{
		Name:       "moving_cube",
		Width:      128,
		Height:     96,
		Background: sky,
		Lighting: shade.Lighting{
			Lights: []*shade.PointLight{
				shade.NewPointLight(mgl64.Vec3{0, 40, -20}, 1, 120),
			},
			Ambient: 0.2,
		},
		Objects: []Object{
			{
				Polygons:  cube(20),
				Transform: geom3d.Transform{Location: mgl64.Vec3{-30, 0, -70}, AngleX: 0.3},
				Texture:   checker(4, 5, red, white),
				Motion: &Motion{
					Target:    mgl64.Vec3{30, 0, -70},
					Speed:     30,
					TurnTo:    3,
					TurnSpeed: 1.5,
				},
			},
		},
	},
}

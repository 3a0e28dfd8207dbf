package gridplanner_test

import (
	"fmt"

	"gridplanner"
)

func ExamplePlanner_FindPath() {
	p := gridplanner.New(gridplanner.WithLogger(nil))
	if err := p.ConfigureMap(8, 8); err != nil {
		panic(err)
	}
	if err := p.SetRobotRadius(1); err != nil {
		panic(err)
	}

	path, err := p.FindPath(gridplanner.Coordinate{X: 1, Y: 1}, gridplanner.Coordinate{X: 6, Y: 6})
	if err != nil {
		panic(err)
	}
	fmt.Println(path)
	for _, line := range p.ExportMap() {
		fmt.Println(line)
	}

	// Output:
	// [[1,1] [2,2] [3,3] [4,4] [5,5] [6,6]]
	// 00000000
	// 0S000000
	// 00*00000
	// 000*0000
	// 0000*000
	// 00000*00
	// 000000D0
	// 00000000
}

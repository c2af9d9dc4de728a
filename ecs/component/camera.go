package component

// OrbitCamera follows a target from LookAtDist away, orbiting it with the
// mouse while the right button is held.
type OrbitCamera struct {
	TargetName  string
	Speed       float64
	LookAtDist  float64
	MinDistance float64
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()

// CameraLens holds projection settings for a camera node.
type CameraLens struct {
	Width  int
	Height int
	Near   float64
	Far    float64
	FovDeg float64
}

var CameraLensComponent = NewComponent[CameraLens]()

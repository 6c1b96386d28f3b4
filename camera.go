package frag3d

// Camera holds the view and projection used by a render pass.
// Objects never own the Camera; it is only passed down through fragment emission.
type Camera struct {
	// ViewM maps world coordinates into camera space (camera at the origin, looking down -Z).
	// Scene rendering uses it as the outermost transform.
	ViewM Mat4
	// PerspM projects camera-space points onto the screen plane; see CalcProjVec.
	PerspM Mat4

	eye, target, up Vec3

	near, far   float64 // The near and far clipping plane. Near defaults to 0.1, far to 100.
	perspective bool    // If the Camera has a perspective projection. If not, it is orthographic.
	fieldOfView float64 // Vertical field of view in degrees for a perspective projection camera
	orthoScale  float64 // Half-width of the view in world units for an orthographic camera
	aspect      float64 // Width divided by height of the view
}

// NewCamera creates a new perspective Camera at (0, 0, 5) looking towards the origin,
// with a 45 degree vertical field of view and a square aspect ratio.
func NewCamera() *Camera {
	cam := &Camera{
		near:        0.1,
		far:         100,
		perspective: true,
		fieldOfView: 45,
		orthoScale:  1,
		aspect:      1,
	}
	cam.SetPointing(Vec3{0, 0, 5}, Vec3{}, VecY)
	cam.updateProjection()
	return cam
}

// NewCameraWithProjection creates a Camera with an identity view and the projection matrix given as-is.
// Calling any of the projection setters afterwards replaces the matrix.
func NewCameraWithProjection(perspM Mat4) *Camera {
	cam := NewCamera()
	cam.ViewM = NewMat4()
	cam.PerspM = perspM
	return cam
}

// SetPointing places the Camera's eye at eye, looking at target, with up as the upwards direction.
func (camera *Camera) SetPointing(eye, target, up Vec3) {
	camera.eye, camera.target, camera.up = eye, target, up
	camera.ViewM = NewLookAt(eye, target, up)
}

// Eye returns the Camera's position in world coordinates.
func (camera *Camera) Eye() Vec3 {
	return camera.eye
}

// Target returns the world position the Camera is looking at.
func (camera *Camera) Target() Vec3 {
	return camera.target
}

// SetPerspective switches the Camera to a perspective projection with the vertical field of view (in degrees)
// and clipping planes given.
func (camera *Camera) SetPerspective(fovY, near, far float64) {
	camera.perspective = true
	camera.fieldOfView = fovY
	camera.near = near
	camera.far = far
	camera.updateProjection()
}

// SetOrthographic switches the Camera to an orthographic projection showing scale world units either side
// of the view center horizontally.
func (camera *Camera) SetOrthographic(scale, near, far float64) {
	camera.perspective = false
	camera.orthoScale = scale
	camera.near = near
	camera.far = far
	camera.updateProjection()
}

// SetAspectRatio sets the width / height ratio of the view.
func (camera *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || !isFinite(aspect) {
		return
	}
	camera.aspect = aspect
	camera.updateProjection()
}

// Perspective returns whether the Camera is perspective or not (orthographic).
func (camera *Camera) Perspective() bool {
	return camera.perspective
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float64 {
	return camera.fieldOfView
}

// Near returns the near plane of the Camera.
func (camera *Camera) Near() float64 {
	return camera.near
}

// Far returns the far plane of the Camera.
func (camera *Camera) Far() float64 {
	return camera.far
}

// AspectRatio returns the width / height ratio of the view.
func (camera *Camera) AspectRatio() float64 {
	return camera.aspect
}

func (camera *Camera) updateProjection() {
	if camera.perspective {
		camera.PerspM = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, camera.aspect)
	} else {
		s := camera.orthoScale
		camera.PerspM = NewProjectionOrthographic(camera.near, camera.far, s, -s, s/camera.aspect, -s/camera.aspect)
	}
}

// WorldToProj transforms a world-space point through the view and projection in one go.
func (camera *Camera) WorldToProj(v Vec3) Vec3 {
	return CalcProjVec(camera.PerspM, camera.ViewM.MultVec4(Vec3To4(v)))
}

// CalcProjVec projects a (camera-space) point with projM. X and Y of the result are normalized screen-plane
// coordinates in [-1, 1] for points inside the view; Z is a depth where larger means farther away.
func CalcProjVec(projM Mat4, v Vec4) Vec3 {
	return Vec4To3(projM.MultVec4(v))
}

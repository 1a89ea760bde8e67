package layout

// Composite float types matching Vec2, Vec3, Vec4 and Quat fields. Any
// float32 array of the right length works; these are the canonical ones.
type (
	Vector2    [2]float32
	Vector3    [3]float32
	Vector4    [4]float32
	Quaternion [4]float32 // x, y, z, w
)

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternion{0, 0, 0, 1}

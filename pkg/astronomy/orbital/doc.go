// Package orbital contains two-body orbit relations: Kepler's third law in both
// directions and simple rotational kinematics. All functions are pure.
package orbital

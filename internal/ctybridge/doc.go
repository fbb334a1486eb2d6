// Package ctybridge converts between reflected values and cty values.
//
// Descriptors map onto cty types as follows: bool to Bool, the other
// arithmetic kinds to Number, string to String, enums to String (the item
// name), vectors to List, sets to Set, string-keyed maps to Map, pointers to
// their pointee (nil is null), and registered classes to an Object with one
// attribute per visible data or container member. Classes without members,
// void and maps keyed by anything but string have no cty form.
package ctybridge

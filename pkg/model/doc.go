// Package model defines the Time & Effort record, the fixed catalog of
// funding sources and departments, and the step-scoped form descriptor that
// front-ends use to prompt for each field. Records keep raw input strings;
// numeric parsing lives in pkg/allocation so derived values are always
// computed from the current record. Record files (YAML or JSON) decode into a
// Record through LoadRecord for batch rendering.
package model

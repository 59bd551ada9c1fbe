// Package pkginfo determines the declared name and version behind an
// installable reference. Cheap shapes (name@version, git URLs) are parsed
// from the string; archives are downloaded or opened, unpacked into a
// scratch directory, and their package.json is read.
package pkginfo

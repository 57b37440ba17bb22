// paths.go implements AllReachEdgePaths, the sole export of this
// package.
package reach

// Package shared provides ambient utilities (debug logging, configuration,
// sentinel errors) used across the proxy: discovery, the message hub, the
// engine, robots, and the admin endpoint.
//
// Debug Mode:
// All debug functions check DEBUG_MODE before producing output. Set the
// DEBUG environment variable to "true" to enable debug logging.
package shared

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
)

// DebugPrint logs format/args with caller file:line/function info when
// DEBUG_MODE is set; it is a no-op otherwise.
func DebugPrint(format string, args ...interface{}) {
	if !DEBUG_MODE {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("DEBUG: "+format+"\n", args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Printf("[%s:%d %s]: "+format+"\n", append([]interface{}{filename, line, funcName}, args...)...)
}

// DebugError logs an error, always (unlike DebugPrint), with caller info
// attached when DEBUG_MODE is set.
func DebugError(err error) {
	if !DEBUG_MODE {
		log.Printf("ERROR: %v\n", err)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("ERROR: %v\n", err)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Printf("ERROR [%s:%d %s]: %v\n", filename, line, funcName, err)
}

// DebugPanic logs a critical condition. Outside DEBUG_MODE it only logs;
// programmer-invariant violations that must actually stop the process
// still go through a returned error to Program, not through this.
func DebugPanic(format string, args ...interface{}) {
	if !DEBUG_MODE {
		log.Printf("CRITICAL ERROR (would panic in debug): "+format, args...)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Panicf("PANIC: "+format, args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Panicf("PANIC [%s:%d %s]: "+format,
		append([]interface{}{filename, line, funcName}, args...)...)
}

func getShortFuncName(fullName string) string {
	if lastSlash := strings.LastIndex(fullName, "/"); lastSlash >= 0 {
		fullName = fullName[lastSlash+1:]
	}
	if lastDot := strings.LastIndex(fullName, "."); lastDot >= 0 {
		return fullName[lastDot+1:]
	}
	return fullName
}

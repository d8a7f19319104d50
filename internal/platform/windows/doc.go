// Package windows implements the platform backends for Microsoft Windows:
// window enumeration and management via user32, UI Automation element trees
// via COM (CUIAutomation), synthetic input and screen capture via robotgo,
// and process management via gopsutil.
package windows

/*
printweather prints today's weather forecast as a small ticket on an ESC-POS
thermal receipt printer.

Usage:

	printweather [latitude] [longitude] [timezone] > /dev/usb/lp0
	printweather --download-icons
	printweather --serve

The ticket shows the chance and hours of precipitation, the minimum and
maximum temperature, an icon for the day's weather and the date. The ESC-POS
stream is written to standard output; logs go to standard error.

Each positional value falls back to the LATITUDE, LONGITUDE and TIMEZONE
environment variables, then to London (51.5072, -0.1276, Europe/London).
A variable that is set but empty is passed on as an empty value. The
location.* keys may also come from PRINTWEATHER_LOCATION_* variables or the
config file, below the unprefixed variables. Values are passed to the
Open-Meteo forecast API unvalidated.

printweather depends on ImageMagick and on the erikflowers/weather-icons SVG
set, expected in a weather-icons directory next to the executable. The icons
can be fetched with --download-icons.

--serve starts an HTTP server answering GET /ticket with the same stream,
optionally for the location given by the latitude, longitude and timezone
query parameters, and GET /ping. When the query moves the location but names
no timezone, the zone is looked up from the coordinates. API documentation is
served under /swagger/.

Other settings are read from printweather.yaml (in ".", "./config" or
"$HOME/.printweather") and from PRINTWEATHER_* environment variables, with
"." in keys replaced by "_":

	log.level           debug, info, warn or error (default info)
	log.format          text or json (default text)
	forecast.url        forecast endpoint (default https://api.open-meteo.com/v1/forecast)
	icons.dir           weather-icons directory
	icons.baseurl       icon download source
	icons.ratelimit     icon downloads per second (default 5, 0 for unlimited)
	raster.command      ImageMagick binary (default convert)
	raster.size         icon size in pixels (default 256)
	raster.density      SVG render density (default 900)
	printer.upsidedown  print the ticket upside down (default true)
	server.port         --serve port (default 8080)
	server.ginmode      gin mode (default release)

A .env file in the working directory is loaded first; variables already set
in the environment take precedence over it.
*/
package main

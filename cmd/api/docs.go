package main

// @title Agrometeo Stations API
// @version 1.0
// @description Live readings of the Mendoza agrometeorological station network as GeoJSON and as a minimal WFS 1.1.0 service.
// @BasePath /
